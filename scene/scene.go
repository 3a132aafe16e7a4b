package scene

import (
	"fmt"

	"softrender/math"
)

// Scene owns every node of one scene graph through an identity-keyed table.
// Roots are tracked separately; a node is always in exactly one of the root
// set or some parent's child list.
type Scene struct {
	nodes  map[NodeID]*SceneNode
	roots  []NodeID
	nextID NodeID
}

func NewScene() *Scene {
	return &Scene{
		nodes: make(map[NodeID]*SceneNode),
		roots: make([]NodeID, 0),
	}
}

// CreateNode allocates a fresh node and adds it to the root set.
func (s *Scene) CreateNode(name string) NodeID {
	s.nextID++
	id := s.nextID

	s.nodes[id] = newSceneNode(id, name)
	s.roots = append(s.roots, id)
	return id
}

// CreateMeshNode creates a node that owns the given mesh.
func (s *Scene) CreateMeshNode(name string, mesh *Mesh) NodeID {
	id := s.CreateNode(name)
	s.nodes[id].Mesh = mesh
	return id
}

// Node looks up a node by identity.
func (s *Scene) Node(id NodeID) (*SceneNode, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// NodeCount returns the number of live nodes.
func (s *Scene) NodeCount() int {
	return len(s.nodes)
}

// Roots returns the current root identities.
func (s *Scene) Roots() []NodeID {
	return s.roots
}

// SetParent detaches child from its current location and appends it to the
// new parent's child list. Both identities must exist; a rejected call
// leaves the child in its previous location.
func (s *Scene) SetParent(childID, parentID NodeID) error {
	child, ok := s.nodes[childID]
	if !ok {
		return fmt.Errorf("scene: set parent: node %d not found", childID)
	}
	if _, ok := s.nodes[parentID]; !ok {
		return fmt.Errorf("scene: set parent: parent node %d not found", parentID)
	}
	if childID == parentID {
		return fmt.Errorf("scene: set parent: node %d cannot be its own parent", childID)
	}

	s.detach(child)
	child.Parent = parentID
	parent := s.nodes[parentID]
	parent.Children = append(parent.Children, childID)
	return nil
}

// detach removes the node from its parent's child list or the root set,
// whichever currently holds it.
func (s *Scene) detach(n *SceneNode) {
	if n.Parent != InvalidNode {
		if parent, ok := s.nodes[n.Parent]; ok {
			parent.Children = removeID(parent.Children, n.ID)
		}
		n.Parent = InvalidNode
		return
	}
	s.roots = removeID(s.roots, n.ID)
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// RemoveNode deletes the node and every descendant from the table.
func (s *Scene) RemoveNode(id NodeID) error {
	node, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("scene: remove: node %d not found", id)
	}

	s.detach(node)
	s.removeSubtree(id)
	return nil
}

func (s *Scene) removeSubtree(id NodeID) {
	node, ok := s.nodes[id]
	if !ok {
		return
	}
	delete(s.nodes, id)
	for _, childID := range node.Children {
		s.removeSubtree(childID)
	}
}

// UpdateTransforms runs one depth-first sweep from every root, recomputing
// dirty local matrices and composing world matrices as parent * local.
// Must run once per frame before rendering; world matrices are stale
// otherwise.
func (s *Scene) UpdateTransforms() {
	for _, rootID := range s.roots {
		s.updateNodeTransform(rootID, math.Mat4Identity())
	}
}

func (s *Scene) updateNodeTransform(id NodeID, parentWorld math.Mat4) {
	node, ok := s.nodes[id]
	if !ok {
		return
	}

	node.worldMatrix = parentWorld.Mul(node.Transform.LocalMatrix())
	for _, childID := range node.Children {
		s.updateNodeTransform(childID, node.worldMatrix)
	}
}

// WorldMatrix returns the node's world matrix from the last update pass.
func (s *Scene) WorldMatrix(id NodeID) (math.Mat4, bool) {
	node, ok := s.nodes[id]
	if !ok {
		return math.Mat4Identity(), false
	}
	return node.worldMatrix, true
}

// TraverseVisible walks the graph depth-first in pre-order, invoking the
// callback for every visible node. An invisible node hides its whole
// subtree regardless of the descendants' own flags.
func (s *Scene) TraverseVisible(callback func(*SceneNode)) {
	for _, rootID := range s.roots {
		s.traverseNode(rootID, callback)
	}
}

func (s *Scene) traverseNode(id NodeID, callback func(*SceneNode)) {
	node, ok := s.nodes[id]
	if !ok || !node.Visible {
		return
	}

	callback(node)
	for _, childID := range node.Children {
		s.traverseNode(childID, callback)
	}
}

// FindNodeByName returns the first node with the given name in depth-first
// pre-order over the roots. Names are not required to be unique.
func (s *Scene) FindNodeByName(name string) (NodeID, bool) {
	var found NodeID
	var walk func(id NodeID) bool
	walk = func(id NodeID) bool {
		node, ok := s.nodes[id]
		if !ok {
			return false
		}
		if node.Name == name {
			found = id
			return true
		}
		for _, childID := range node.Children {
			if walk(childID) {
				return true
			}
		}
		return false
	}

	for _, rootID := range s.roots {
		if walk(rootID) {
			return found, true
		}
	}
	return InvalidNode, false
}
