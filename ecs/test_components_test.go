package ecs_test

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	HP int
}

type Name struct {
	Value string
}

type AI struct {
	State int
}

type PlayerTag struct{}

type Lifespan struct {
	Remaining int
}

type Inventory struct {
	Items []string
}
