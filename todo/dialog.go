package todo

// DeleteDialog is the transient state of the delete confirmation.
// When Show is false the dialog is idle and Index is meaningless.
type DeleteDialog struct {
	Show  bool `json:"show"`
	Index int  `json:"index"`
}

// Idle reports whether no delete is awaiting confirmation.
func (d DeleteDialog) Idle() bool {
	return !d.Show
}

// Pending returns the index awaiting confirmation, if any.
func (d DeleteDialog) Pending() (int, bool) {
	if !d.Show {
		return 0, false
	}
	return d.Index, true
}

// Request moves the dialog to pending(i). A request while another delete is
// pending retargets the dialog to i.
func (d DeleteDialog) Request(i int) DeleteDialog {
	return DeleteDialog{Show: true, Index: i}
}

// Close moves the dialog back to idle.
func (d DeleteDialog) Close() DeleteDialog {
	return DeleteDialog{}
}
