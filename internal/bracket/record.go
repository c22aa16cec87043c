package bracket

// RecordResult decides match matchID.
//
// If exactly one side is BYE the other side advances and winner is ignored.
// Otherwise an empty winner draws a score in [0, MaxScore] for each side; the
// higher score wins and the left side wins a tie. A non-empty winner must equal
// one of the two contenders.
//
// On success the whole tree is propagated before returning. On failure the
// tree is unchanged.
func (t *Tree) RecordResult(matchID int, winner string) (Outcome, error) {
	idx := t.index(matchID)
	if idx < 0 {
		return Outcome{}, lookupError(matchID)
	}
	n := &t.nodes[idx]
	if n.winner != "" {
		return Outcome{}, stateError(matchID, "match already decided")
	}

	left, right := n.sides[0], n.sides[1]
	out := Outcome{MatchID: matchID}
	var event *ResultEvent

	switch {
	case left == Bye && right == Bye:
		return Outcome{}, stateError(matchID, "both sides are byes")
	case left == Bye || right == Bye:
		other := left
		if left == Bye {
			other = right
		}
		if other == "" {
			return Outcome{}, stateError(matchID, "opponent of bye not yet decided")
		}
		out.Kind = OutcomeBye
		out.Winner = other
	case left == "" || right == "":
		return Outcome{}, stateError(matchID, "contenders not yet decided")
	case winner == "":
		ls, rs := drawScore(t.src), drawScore(t.src)
		out.Kind = OutcomeScored
		out.LeftScore, out.RightScore = ls, rs
		out.Winner = left
		if rs > ls {
			out.Winner = right
		}
		event = &ResultEvent{
			MatchID:    matchID,
			Left:       left,
			LeftScore:  ls,
			Right:      right,
			RightScore: rs,
			Winner:     out.Winner,
		}
	default:
		if winner != left && winner != right {
			return Outcome{}, validationError(matchID, winner, left, right)
		}
		out.Kind = OutcomeExplicit
		out.Winner = winner
	}

	n.winner = out.Winner
	if out.Kind == OutcomeScored {
		n.scored = true
		n.scores = [2]int{out.LeftScore, out.RightScore}
	}
	t.Propagate()

	if event != nil {
		for _, o := range t.observers {
			o(*event)
		}
	}
	return out, nil
}

// Propagate recomputes every match's displayed sides from its children and
// advances any match where exactly one side is BYE and the other is known.
//
// Children precede parents in the arena, so one forward pass sees every
// child's final state. Calling Propagate twice in a row changes nothing the
// second time.
func (t *Tree) Propagate() {
	for i := t.size; i < len(t.nodes); i++ {
		n := &t.nodes[i]
		n.sides[0] = t.resolved(n.left)
		n.sides[1] = t.resolved(n.right)
		if n.winner != "" {
			continue
		}
		switch {
		case n.sides[0] == Bye && n.sides[1] != Bye && n.sides[1] != "":
			n.winner = n.sides[1]
		case n.sides[1] == Bye && n.sides[0] != Bye && n.sides[0] != "":
			n.winner = n.sides[0]
		}
	}
}
