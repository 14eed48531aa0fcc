package models

import "slices"

// Clone methods return copies that share no slices with the receiver.

func (a Account) Clone() Account {
	a.Salt = slices.Clone(a.Salt)
	a.PasswordHash = slices.Clone(a.PasswordHash)
	return a
}

func (p Project) Clone() Project {
	p.Settings = p.Settings.Clone()
	return p
}

func (s ProjectSettings) Clone() ProjectSettings {
	s.FetcherAPIs = slices.Clone(s.FetcherAPIs)
	s.DecisionMatrix.Patterns = slices.Clone(s.DecisionMatrix.Patterns)
	return s
}

func (p Paper) Clone() Paper {
	p.Authors = slices.Clone(p.Authors)
	p.BackwardReferencedPaperIDs = slices.Clone(p.BackwardReferencedPaperIDs)
	p.ForwardReferencedPaperIDs = slices.Clone(p.ForwardReferencedPaperIDs)
	return p
}

func (r Review) Clone() Review {
	r.SelectedCriteriaIDs = slices.Clone(r.SelectedCriteriaIDs)
	return r
}
