package locomotion

// AnimationID names an avatar animation clip.
type AnimationID string

const (
	AnimIdle AnimationID = "idle"
	AnimWalk AnimationID = "walk"
	AnimRun  AnimationID = "run"
	AnimJump AnimationID = "jump"
	AnimFall AnimationID = "fall"
)

// JumpBlend is the blend time of the jump take-off, which always cuts in.
const JumpBlend = 0.0

// Animation is the clip the visual sink should play and how long to
// cross-fade into it, in seconds.
type Animation struct {
	ID        AnimationID
	BlendTime float64
}
