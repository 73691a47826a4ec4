package controls

import (
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/go-gl/mathgl/mgl64"
)

// KeyMouse reads held keys, runs while the run key is held and looks with
// the pointer.
type KeyMouse struct {
	camera  *Camera
	cfg     config.ControlsConfig
	pressed map[Key]bool
	running bool
	cancel  func()
}

// NewKeyMouse subscribes to hub. Keys already held count as pressed.
func NewKeyMouse(hub *Hub, camera *Camera, cfg config.ControlsConfig) *KeyMouse {
	held := hub.Held()
	k := &KeyMouse{
		camera:  camera,
		cfg:     cfg,
		pressed: held,
		running: held[KeyRun],
	}
	k.cancel = hub.Subscribe(k.handle)
	return k
}

func (k *KeyMouse) handle(e Event) {
	switch e.Type {
	case KeyDown:
		k.pressed[e.Key] = true
		if e.Key == KeyRun {
			k.running = true
		}
	case KeyUp:
		delete(k.pressed, e.Key)
		if e.Key == KeyRun {
			k.running = false
		}
	case PointerMove:
		k.camera.Rotate(-e.DX*k.cfg.MouseSensitivity, -e.DY*k.cfg.MouseSensitivity)
	}
}

func (k *KeyMouse) Kind() config.ControlModeID { return config.ControlModeKeyboardMouse }

func (k *KeyMouse) Intent() locomotion.Intent {
	return intentFromKeys(k.pressed, k.running)
}

func (k *KeyMouse) ForwardVector() mgl64.Vec3 { return k.camera.Basis().Forward }
func (k *KeyMouse) SideVector() mgl64.Vec3    { return k.camera.Basis().Side }

// ControlObject sends the camera's world direction.
func (k *KeyMouse) ControlObject() messages.ControlObject {
	return messages.ControlObject{
		Kind:      string(config.ControlModeKeyboardMouse),
		Direction: toArray3(k.camera.Direction()),
		Yaw:       k.camera.Yaw,
		Running:   k.running,
	}
}

func (k *KeyMouse) Running() bool { return k.running }
func (k *KeyMouse) StopRunning()  { k.running = false }

func (k *KeyMouse) Update(float64) {}

func (k *KeyMouse) Release() {
	if k.cancel != nil {
		k.cancel()
		k.cancel = nil
	}
}
