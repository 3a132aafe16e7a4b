package scene

import (
	"softrender/core"
	"softrender/math"
)

// NodeID is a stable handle into a Scene's node table.
type NodeID uint32

// InvalidNode is the zero NodeID; nodes with Parent == InvalidNode are roots.
const InvalidNode NodeID = 0

// SceneNode is one entry of the scene graph. Parent and Children are
// identity references into the owning Scene's node table, never direct
// pointers, so the arena stays the single owner of every node.
type SceneNode struct {
	ID        NodeID
	Name      string
	Transform core.Transform
	Mesh      *Mesh
	Parent    NodeID
	Children  []NodeID
	Visible   bool

	// World matrix computed by the last Scene.UpdateTransforms pass.
	worldMatrix math.Mat4
}

func newSceneNode(id NodeID, name string) *SceneNode {
	return &SceneNode{
		ID:          id,
		Name:        name,
		Transform:   core.NewTransform(),
		Children:    make([]NodeID, 0),
		Visible:     true,
		worldMatrix: math.Mat4Identity(),
	}
}

// WorldMatrix returns the world matrix from the last transform update pass.
// It is stale until Scene.UpdateTransforms has run for the current frame.
func (n *SceneNode) WorldMatrix() math.Mat4 {
	return n.worldMatrix
}

// IsRoot reports whether the node has no parent.
func (n *SceneNode) IsRoot() bool {
	return n.Parent == InvalidNode
}
