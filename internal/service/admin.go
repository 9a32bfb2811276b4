package service

// Admin passthroughs for the externally managed sets. The drill core
// only ever reads these.

// ReplaceNewWords swaps a learner's new-word marker set wholesale,
// keeping only ids that exist in the bank.
func (svc *SessionService) ReplaceNewWords(learnerID string, ids []string) error {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := svc.bank.ByID(id); ok {
			valid = append(valid, id)
		}
	}
	return svc.store.ReplaceNewSet(learnerID, valid)
}

// SetCategoryOverride sets or clears one item's category override.
func (svc *SessionService) SetCategoryOverride(wordID, category string) error {
	return svc.store.SetCategoryOverride(wordID, category)
}
