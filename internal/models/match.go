package models

// Match stores roles explicitly, so the (startup, investor) index covers the unordered pair.
type Match struct {
	BaseModel
	StartupUserID  string      `gorm:"size:36;not null;uniqueIndex:idx_matches_pair,priority:1"`
	InvestorUserID string      `gorm:"size:36;not null;uniqueIndex:idx_matches_pair,priority:2;index"`
	StartupScore   int         `gorm:"not null"`
	InvestorScore  int         `gorm:"not null"`
	MutualScore    float64     `gorm:"type:numeric(5,2);not null"`
	Status         MatchStatus `gorm:"type:varchar(20);not null;default:'matched';index"`
}

func (m *Match) HasUser(userID string) bool {
	return m.StartupUserID == userID || m.InvestorUserID == userID
}

func (m *Match) OtherUserID(userID string) string {
	if m.StartupUserID == userID {
		return m.InvestorUserID
	}
	return m.StartupUserID
}
