package svo

// allSubjects returns the subjects at the left of the verb, with their
// coordinated subjects. If there are none, it looks up the tree.
func (e *extractor) allSubjects(v int) []int {
	subs := []int{}
	for _, l := range e.tree.Lefts(v) {
		tok := e.tree.Token(l)
		if Subjects.Contains(tok.Dep) && tok.Pos != "DET" && !relativePronouns.Contains(tok.Lower()) {
			subs = append(subs, l)
		}
	}

	if len(subs) == 0 {
		return e.findSubjects(v)
	}

	return append(subs, e.subjectConjunctions(subs)...)
}

// subjectConjunctions returns the subjects coordinated to subs, as in
// "alice and bob".
func (e *extractor) subjectConjunctions(subs []int) []int {
	return closure(subs, func(sub int) []int {
		rights := e.tree.Rights(sub)
		if !e.hasConjWord(rights) {
			return nil
		}

		more := []int{}
		for _, r := range rights {
			tok := e.tree.Token(r)
			if Subjects.Contains(tok.Dep) || tok.Pos == "NOUN" || tok.Pos == "PROPN" {
				more = append(more, r)
			}
		}

		return more
	})
}

// findSubjects climbs from tok to the first verb or noun. The subjects of a
// verb are its left subjects; a noun is itself the subject, as the head of a
// relative clause.
func (e *extractor) findSubjects(tok int) []int {
	head := e.tree.Head(tok)
	for {
		pos := e.tree.Token(head).Pos
		if pos == "VERB" || pos == "NOUN" || e.tree.IsRoot(head) {
			break
		}
		head = e.tree.Head(head)
	}

	switch e.tree.Token(head).Pos {
	case "VERB":
		subs := e.leftSubjects(head, func(dep string) bool { return dep == "SUB" })
		if len(subs) == 0 {
			subs = e.leftSubjects(head, func(dep string) bool { return Subjects.Contains(dep) })
		}

		if len(subs) > 0 {
			return append(subs, e.subjectConjunctions(subs)...)
		}

		if !e.tree.IsRoot(head) {
			return e.findSubjects(head)
		}

	case "NOUN":
		return []int{head}
	}

	return nil
}

func (e *extractor) leftSubjects(v int, isSubject func(string) bool) []int {
	subs := []int{}
	for _, l := range e.tree.Lefts(v) {
		tok := e.tree.Token(l)
		if isSubject(tok.Dep) && !relativePronouns.Contains(tok.Lower()) {
			subs = append(subs, l)
		}
	}

	return subs
}

// extractSubjects borrows the subjects of the verb coordinated with v, as in
// "they attacked and burned the camp" for "burned".
func (e *extractor) extractSubjects(v int) []int {
	if !conjDeps.Contains(e.tree.Token(v).Dep) {
		return e.subjects(v)
	}

	for _, other := range e.verbs {
		for _, c := range e.tree.Conjuncts(other) {
			if c == v {
				return e.subjects(other)
			}
		}
	}

	return e.subjects(v)
}

// subjects returns the subject children of the verb and their conjuncts.
func (e *extractor) subjects(v int) []int {
	subs := []int{}
	for _, c := range e.tree.Children(v) {
		if Subjects.Contains(e.tree.Token(c).Dep) {
			subs = append(subs, c)
		}
	}

	return append(subs, e.conjChildren(subs)...)
}

// conjChildren returns the conj descendants of tokens.
func (e *extractor) conjChildren(tokens []int) []int {
	return closure(tokens, func(t int) []int {
		more := []int{}
		for _, c := range e.tree.Children(t) {
			if e.tree.Token(c).Dep == "conj" {
				more = append(more, c)
			}
		}
		return more
	})
}
