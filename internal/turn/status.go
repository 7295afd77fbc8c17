package turn

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chess3d-backend/internal/rules"
)

type Phase string

const (
	PhaseToMove   Phase = "toMove"
	PhaseFinished Phase = "finished"
)

// Status is the part of the game state the UI displays.
type Status struct {
	Phase  Phase        `json:"phase"`
	ToMove rules.Color  `json:"toMove"`
	Winner *rules.Color `json:"winner,omitempty"`
	Method Method       `json:"method,omitempty"`
	Text   string       `json:"text"`
}

func (s State) Status() Status {
	st := Status{Phase: PhaseToMove, ToMove: s.ToMove}
	if s.Outcome != nil {
		st.Phase = PhaseFinished
		st.Winner = s.Outcome.Winner
		st.Method = s.Outcome.Method
	}
	st.Text = st.text()
	return st
}

func (st Status) text() string {
	switch {
	case st.Phase == PhaseToMove:
		return fmt.Sprintf("Next move: %s", title(st.ToMove))
	case st.Winner != nil:
		return fmt.Sprintf("%s Wins!", title(*st.Winner))
	default:
		return fmt.Sprintf("Draw by %s", st.Method)
	}
}

func title(c rules.Color) string {
	s := c.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
