package game

import (
	"github.com/cbodonnell/swipeduel/pkg/collisions"
	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/kinematic"
	"github.com/solarlune/resolv"
)

// Registry owns the local pool of tokens.
// It is not safe for concurrent use; the GameManager lock guards it.
type Registry struct {
	tokens []*types.Token
	space  *resolv.Space
	nextID uint32
	size   float64
}

// NewRegistry creates an empty registry whose collision space covers the viewport.
func NewRegistry(viewportWidth, viewportHeight float64) *Registry {
	return &Registry{
		space: collisions.NewCollisionSpace(viewportWidth, viewportHeight),
		size:  constants.ObjectSize,
	}
}

// Add creates an idle token at the given position.
func (r *Registry) Add(tokenType types.TokenType, position kinematic.Vector) *types.Token {
	r.nextID++
	token := &types.Token{
		ID:        r.nextID,
		Type:      tokenType,
		Position:  position,
		Animation: types.AnimationStateIdle,
		Object:    resolv.NewObject(position.X, position.Y, r.size, r.size, types.CollisionSpaceTagToken),
	}
	r.space.Add(token.Object)
	r.tokens = append(r.tokens, token)
	return token
}

// AddIncoming creates a token that flies in from startX.
// Its target is assigned by the next Arrange.
func (r *Registry) AddIncoming(tokenType types.TokenType, startX, rowY float64) *types.Token {
	start := kinematic.Vector{X: startX, Y: rowY}
	token := r.Add(tokenType, start)
	token.Animation = types.AnimationStateIncoming
	token.Target = start
	return token
}

// Remove deletes a token. It reports whether the token existed.
func (r *Registry) Remove(id uint32) bool {
	for i, token := range r.tokens {
		if token.ID != id {
			continue
		}
		r.space.Remove(token.Object)
		r.tokens = append(r.tokens[:i], r.tokens[i+1:]...)
		return true
	}
	return false
}

func (r *Registry) Get(id uint32) (*types.Token, bool) {
	for _, token := range r.tokens {
		if token.ID == id {
			return token, true
		}
	}
	return nil, false
}

// Tokens returns the pool in insertion order.
func (r *Registry) Tokens() []*types.Token {
	tokens := make([]*types.Token, len(r.tokens))
	copy(tokens, r.tokens)
	return tokens
}

func (r *Registry) Len() int {
	return len(r.tokens)
}

// Count returns the number of owned tokens of a type, incoming ones included.
func (r *Registry) Count(tokenType types.TokenType) int {
	count := 0
	for _, token := range r.tokens {
		if token.Type == tokenType {
			count++
		}
	}
	return count
}

// Reset empties the pool and refills it with initialEach squares followed by initialEach circles.
// Token ids keep counting up.
func (r *Registry) Reset(initialEach int) {
	for _, token := range r.tokens {
		r.space.Remove(token.Object)
	}
	r.tokens = nil
	for i := 0; i < initialEach; i++ {
		r.Add(types.TokenTypeSquare, kinematic.Vector{})
	}
	for i := 0; i < initialEach; i++ {
		r.Add(types.TokenTypeCircle, kinematic.Vector{})
	}
}

// MoveTo sets a token position and keeps its collision object in sync.
func (r *Registry) MoveTo(id uint32, position kinematic.Vector) bool {
	token, ok := r.Get(id)
	if !ok {
		return false
	}
	r.setPosition(token, position)
	return true
}

func (r *Registry) setPosition(token *types.Token, position kinematic.Vector) {
	token.Position = position
	token.Object.Position.X = position.X
	token.Object.Position.Y = position.Y
	token.Object.Update()
}

// RowY returns the y coordinate of the arranged row.
func RowY(viewportHeight float64) float64 {
	return viewportHeight - constants.ObjectSize - constants.BottomMargin
}

// SlotX returns the x coordinate of slot i in a centered row of n tokens.
func SlotX(viewportWidth float64, n, i int) float64 {
	rowWidth := float64(n)*constants.ObjectSize + float64(n-1)*constants.ObjectGap
	return (viewportWidth-rowWidth)/2 + float64(i)*(constants.ObjectSize+constants.ObjectGap)
}

// Arrange lays out the idle tokens other than selectedID in a centered row
// and points every incoming token at the slot after them.
// A selectedID of 0 means nothing is selected.
func (r *Registry) Arrange(viewportWidth, viewportHeight float64, selectedID uint32) {
	rowY := RowY(viewportHeight)

	idle := 0
	incoming := 0
	for _, token := range r.tokens {
		switch {
		case token.Animation == types.AnimationStateIncoming:
			incoming++
		case token.ID != selectedID:
			idle++
		}
	}

	i, j := 0, 0
	for _, token := range r.tokens {
		switch {
		case token.Animation == types.AnimationStateIncoming:
			token.Target = kinematic.Vector{X: SlotX(viewportWidth, idle+incoming, idle+j), Y: rowY}
			j++
		case token.ID != selectedID:
			r.setPosition(token, kinematic.Vector{X: SlotX(viewportWidth, idle, i), Y: rowY})
			i++
		}
	}
}

// Tick advances every incoming token one animation step toward its target.
// A token that reaches its target becomes idle.
func (r *Registry) Tick() {
	for _, token := range r.tokens {
		if token.Animation != types.AnimationStateIncoming {
			continue
		}
		x, arrived := kinematic.Approach(token.Position.X, token.Target.X, constants.AnimationSpeed)
		r.setPosition(token, kinematic.Vector{X: x, Y: token.Target.Y})
		if arrived {
			token.Animation = types.AnimationStateIdle
		}
	}
}

// TokenAt returns the first idle token under point, in pool order.
func (r *Registry) TokenAt(point kinematic.Vector) (*types.Token, bool) {
	probe := resolv.NewObject(point.X, point.Y, 1, 1, types.CollisionSpaceTagPointer)
	r.space.Add(probe)
	defer r.space.Remove(probe)

	for _, token := range r.tokens {
		if !token.IsIdle() {
			continue
		}
		if !probe.SharesCells(token.Object) {
			continue
		}
		if token.Contains(point, r.size) {
			return token, true
		}
	}
	return nil, false
}
