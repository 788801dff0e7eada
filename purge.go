// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cdn

// Container is anything that identifies a storage container by key.
type Container interface {
	Key() string
}

// Purgeable is an object that can be evicted from the CDN edge caches.
// It names itself and the container holding it.
type Purgeable interface {
	Key() string
	Directory() Container
}

// ContainerName is a Container identified by its name alone.
type ContainerName string

// Key implements Container.
func (n ContainerName) Key() string {
	return string(n)
}

// ObjectRef is a Purgeable reference to an object in a container.
type ObjectRef struct {
	Container string
	Name      string
}

// Key implements Purgeable.
func (o ObjectRef) Key() string {
	return o.Name
}

// Directory implements Purgeable.
func (o ObjectRef) Directory() Container {
	return ContainerName(o.Container)
}
