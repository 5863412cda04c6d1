package collisions

import (
	"testing"

	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
)

func TestNewCollisionSpace(t *testing.T) {
	space := NewCollisionSpace(640, 480)

	object := resolv.NewObject(100, 100, 50, 50, "token")
	space.Add(object)
	assert.Equal(t, space, object.Space)

	inside := resolv.NewObject(120, 120, 1, 1)
	outside := resolv.NewObject(400, 400, 1, 1)
	space.Add(inside, outside)
	assert.True(t, inside.SharesCells(object))
	assert.False(t, outside.SharesCells(object))
}

func TestNewCollisionSpace_offscreenObject(t *testing.T) {
	space := NewCollisionSpace(640, 480)

	// half of the object hangs off the left edge
	object := resolv.NewObject(-25, 100, 50, 50, "token")
	space.Add(object)

	visible := resolv.NewObject(10, 110, 1, 1)
	space.Add(visible)
	assert.True(t, visible.SharesCells(object))
}
