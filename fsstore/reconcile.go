package fsstore

// reconcile drops any active-side job whose id is also present in the
// DLQ. MoveToDLQ writes the DLQ entry before removing the active one,
// so such a duplicate can only exist if a prior process crashed
// between those two writes; the DLQ copy is authoritative.
func (s *Store) reconcile() error {
	return s.withStoreLock(func() error {
		dlq, err := s.readDLQ()
		if err != nil {
			return err
		}
		if len(dlq) == 0 {
			return nil
		}
		dead := make(map[string]struct{}, len(dlq))
		for _, j := range dlq {
			dead[j.Id] = struct{}{}
		}

		jobs, err := s.readJobs()
		if err != nil {
			return err
		}
		kept := jobs[:0]
		dropped := 0
		for _, j := range jobs {
			if _, ok := dead[j.Id]; ok {
				dropped++
				continue
			}
			kept = append(kept, j)
		}
		if dropped == 0 {
			return nil
		}
		return s.writeJobs(kept)
	})
}
