package monitor

import "errors"

// handleOpenError closes a partially opened port and joins any close
// error with the original one. Assumes the mutex is held by the caller.
func (s *Service) handleOpenError(err error) error {
	if e := s.closeWithoutLock(); e != nil {
		err = errors.Join(err, e)
	}
	return err
}

// closeWithoutLock clears the handle and open flag, then closes the
// port. Assumes the mutex is held by the caller.
func (s *Service) closeWithoutLock() error {
	h := s.handle
	s.handle = nil
	s.isOpen.Store(false)
	if h != nil {
		return h.Close()
	}
	return nil
}
