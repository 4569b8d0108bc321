package sheet

const maxHistory = 200

func (s *Sheet) commit() {
	s.history = append(s.history[:s.cursor+1], cloneRows(s.rows))
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
	s.cursor = len(s.history) - 1
}

func (s *Sheet) CanUndo() bool { return s.cursor > 0 }

func (s *Sheet) CanRedo() bool { return s.cursor < len(s.history)-1 }

// Undo restores the previous snapshot. Restored rows get fresh revisions so
// in-flight results for the replaced content are dropped, and are returned
// as jobs for re-evaluation.
func (s *Sheet) Undo() ([]Job, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	s.cursor--
	return s.restore(), true
}

func (s *Sheet) Redo() ([]Job, bool) {
	if !s.CanRedo() {
		return nil, false
	}
	s.cursor++
	return s.restore(), true
}

func (s *Sheet) restore() []Job {
	s.rows = cloneRows(s.history[s.cursor])
	for i := range s.rows {
		s.rev++
		s.rows[i].Revision = s.rev
	}
	return s.allJobs()
}
