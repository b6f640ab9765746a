package graphics

import "fmt"

// AttributeBuffer is one per-vertex data stream uploaded to the GPU once.
// Data is laid out vertex after vertex, Components floats per vertex.
type AttributeBuffer struct {
	dev        Device
	name       string
	location   AttributeID
	components int
	count      int
	vbo        uint32
}

// NewAttributeBuffer uploads data for the attribute at location. The buffer is
// immutable afterwards; its owner calls Delete when it goes away.
func NewAttributeBuffer(dev Device, name string, location AttributeID, components int, data []float32) (*AttributeBuffer, error) {
	if components <= 0 || len(data)%components != 0 {
		return nil, &ResourceError{
			Resource: "attribute buffer " + name,
			Err:      fmt.Errorf("%d floats do not split into %d-component vertices", len(data), components),
		}
	}

	vbo, err := dev.CreateBuffer(data)
	if err != nil {
		return nil, &ResourceError{Resource: "attribute buffer " + name, Err: err}
	}

	return &AttributeBuffer{
		dev:        dev,
		name:       name,
		location:   location,
		components: components,
		count:      len(data) / components,
		vbo:        vbo,
	}, nil
}

func (b *AttributeBuffer) Name() string { return b.name }

// Location is the attribute location the buffer binds to when drawn.
func (b *AttributeBuffer) Location() AttributeID { return b.location }

func (b *AttributeBuffer) Components() int { return b.components }

// Len returns the number of vertices in the buffer.
func (b *AttributeBuffer) Len() int { return b.count }

// Delete releases the GPU buffer. Calling it twice is a no-op.
func (b *AttributeBuffer) Delete() {
	if b.vbo == 0 {
		return
	}
	b.dev.DeleteBuffer(b.vbo)
	b.vbo = 0
}
