package hba

import "fmt"

// FakeAdapter scripts one adapter's ports for Fake.
type FakeAdapter struct {
	Name  string
	Attrs AdapterAttrs
	Ports []FakePort
}

// FakePort scripts one port's attributes and PHY identifiers.
type FakePort struct {
	Attrs PortAttrs
	Phys  []uint32
}

// Fake is a minimal scripted Source for exercising Discover in isolation,
// grounded on the discovery double pattern used for external-system
// stand-ins elsewhere in this corpus. It is not the SAS_FAKE_ENUM fixture
// topology (that lives in package topo).
type Fake struct {
	Adapters []FakeAdapter

	loaded bool
}

func (f *Fake) Load() error {
	f.loaded = true
	return nil
}

func (f *Fake) Unload() { f.loaded = false }

func (f *Fake) NumAdapters() (int, error) { return len(f.Adapters), nil }

func (f *Fake) AdapterName(i int) (string, error) {
	if i < 0 || i >= len(f.Adapters) {
		return "", fmt.Errorf("fake: adapter index %d out of range", i)
	}
	return f.Adapters[i].Name, nil
}

func (f *Fake) Open(name string) (AdapterHandle, error) {
	for i := range f.Adapters {
		if f.Adapters[i].Name == name {
			return i, nil
		}
	}
	return nil, fmt.Errorf("fake: no such adapter %q", name)
}

func (f *Fake) AdapterAttrs(h AdapterHandle) (AdapterAttrs, error) {
	return f.Adapters[h.(int)].Attrs, nil
}

func (f *Fake) NumPorts(h AdapterHandle) (int, error) {
	return len(f.Adapters[h.(int)].Ports), nil
}

func (f *Fake) PortAttrs(h AdapterHandle, j int) (PortAttrs, error) {
	return f.Adapters[h.(int)].Ports[j].Attrs, nil
}

func (f *Fake) PhyAttrs(h AdapterHandle, j, k int) (PhyAttrs, error) {
	return PhyAttrs{PhyIdentifier: f.Adapters[h.(int)].Ports[j].Phys[k]}, nil
}
