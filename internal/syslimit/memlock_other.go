//go:build !linux

package syslimit

// Lock is unsupported on this platform.
func (ml *MemoryLocker) Lock(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return ErrUnsupported
}

// Unlock is a no-op on this platform.
func (ml *MemoryLocker) Unlock([]byte) error {
	return nil
}
