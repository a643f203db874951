// Package registry provides a synchronized, named dispatch table of
// delegates sharing one signature.
//
// Tables are the intended home for delegates that outlive the scope that
// created them: handler registries, command tables, callback maps.
// Copyable delegates enter with Register, move-only ones with Adopt;
// removal destroys the stored payload, running its Drop hook if it has
// one.
//
//	t := registry.New[int, int]()
//	defer t.Close()
//
//	f := delegate.New(func(x int) int { return x * 2 })
//	t.Register("double", &f)
//
//	out, err := t.Invoke("double", 21) // 42, nil
//
// Names are keyed by xxhash with full-name confirmation, so collisions
// degrade to a short chain scan rather than misdispatch.
package registry
