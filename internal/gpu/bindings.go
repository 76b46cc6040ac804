//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/life"
	"github.com/gogpu/wgpu/hal"
)

// BindingSetPair holds the two binding configurations: index 0 reads A and
// writes B, index 1 reads B and writes A. Both share the grid uniform.
// The groups are created once and only ever selected.
type BindingSetPair struct {
	device hal.Device
	groups [2]hal.BindGroup
}

func newBindingSetPair(device hal.Device, layout *sharedLayout, store *StateStore) (*BindingSetPair, error) {
	p := &BindingSetPair{device: device}
	a, b := store.Buffer(0), store.Buffer(1)
	var err error
	if p.groups[0], err = p.createBinding("life_bind_a_to_b", layout, store, a, b); err != nil {
		return nil, err
	}
	if p.groups[1], err = p.createBinding("life_bind_b_to_a", layout, store, b, a); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *BindingSetPair) createBinding(label string, layout *sharedLayout, store *StateStore, in, out hal.Buffer) (hal.BindGroup, error) {
	bg, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label,
		Layout: layout.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: store.Uniform().NativeHandle(), Offset: 0, Size: gridUniformSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: in.NativeHandle(), Offset: 0, Size: store.Size()}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: out.NativeHandle(), Offset: 0, Size: store.Size()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceCreation, label, err)
	}
	return bg, nil
}

// Select returns the configuration for step: the one whose input is
// buffer step%2.
func (p *BindingSetPair) Select(step uint64) hal.BindGroup {
	return p.groups[life.Parity(step)]
}

func (p *BindingSetPair) destroy() {
	for i := range p.groups {
		if p.groups[i] != nil {
			p.device.DestroyBindGroup(p.groups[i])
			p.groups[i] = nil
		}
	}
}
