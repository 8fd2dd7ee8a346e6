package contract

// PartyProgress reports how many of a party's fields the user has filled in.
type PartyProgress struct {
	Modified  []Field `json:"modified"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// Progress reports form completion for both parties.
type Progress struct {
	Founder     PartyProgress `json:"founder"`
	Contributor PartyProgress `json:"contributor"`
	Percent     float64       `json:"percent"`
}

// Progress derives completion from modification tracking.
func (s *Store) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	founder := s.partyProgress(PartyFounder)
	contributor := s.partyProgress(PartyContributor)
	return Progress{
		Founder:     founder,
		Contributor: contributor,
		Percent:     percent(founder.Completed+contributor.Completed, founder.Total+contributor.Total),
	}
}

func (s *Store) partyProgress(party Party) PartyProgress {
	modified := s.modifiedFields(party)
	total := len(fieldsOf(party))
	return PartyProgress{
		Modified:  modified,
		Completed: len(modified),
		Total:     total,
		Percent:   percent(len(modified), total),
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
