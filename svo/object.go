package svo

// allObjects returns the objects of the verb: its direct objects, the
// objects of its prepositions and the objects of an open clausal complement
// (xcomp). In that last case the complement verb replaces v, and a base
// form complement is never passive.
func (e *extractor) allObjects(v int, isPas bool) (int, bool, []int) {
	rights := e.tree.Rights(v)

	objs := []int{}
	for _, r := range rights {
		dep := e.tree.Token(r).Dep
		if Objects.Contains(dep) || (isPas && dep == "pobj") {
			objs = append(objs, r)
		}
	}
	objs = append(objs, e.prepObjects(rights, isPas)...)

	if xv, xobjs, ok := e.xcompObjects(rights, isPas); ok {
		objs = append(objs, xobjs...)
		v = xv
		if e.tree.Token(v).Tag == "VB" {
			isPas = false
		}
	}

	if len(objs) > 0 {
		objs = append(objs, e.objectConjunctions(objs)...)
	} else {
		objs = e.extractObjects(v)
	}

	return v, isPas, uniq(objs)
}

// prepObjects returns the objects of the prepositions among deps. In passive
// voice the agent "by" introduces the logical subject.
func (e *extractor) prepObjects(deps []int, isPas bool) []int {
	objs := []int{}
	for _, d := range deps {
		tok := e.tree.Token(d)
		if tok.Pos != "ADP" || !(tok.Dep == "prep" || (isPas && tok.Dep == "agent")) {
			continue
		}

		for _, r := range e.tree.Rights(d) {
			rt := e.tree.Token(r)
			if Objects.Contains(rt.Dep) ||
				(rt.Pos == "PRON" && rt.Lower() == "me") ||
				(isPas && rt.Dep == "pobj") {
				objs = append(objs, r)
			}
		}
	}

	return objs
}

// xcompObjects returns the first open complement verb with objects.
func (e *extractor) xcompObjects(deps []int, isPas bool) (int, []int, bool) {
	for _, d := range deps {
		tok := e.tree.Token(d)
		if tok.Pos != "VERB" || tok.Dep != "xcomp" {
			continue
		}

		rights := e.tree.Rights(d)
		objs := []int{}
		for _, r := range rights {
			if Objects.Contains(e.tree.Token(r).Dep) {
				objs = append(objs, r)
			}
		}
		objs = append(objs, e.prepObjects(rights, isPas)...)

		if len(objs) > 0 {
			return d, objs, true
		}
	}

	return 0, nil, false
}

// objectConjunctions returns the objects coordinated to objs. When no
// coordinating word is found, the conj descendants are used.
func (e *extractor) objectConjunctions(objs []int) []int {
	more := closure(objs, func(obj int) []int {
		rights := e.tree.Rights(obj)
		if !e.hasConjWord(rights) {
			return nil
		}

		found := []int{}
		for _, r := range rights {
			tok := e.tree.Token(r)
			if Objects.Contains(tok.Dep) || tok.Pos == "NOUN" || tok.Pos == "PROPN" {
				found = append(found, r)
			}
		}

		return found
	})

	if len(more) > 0 {
		return more
	}

	return e.conjChildren(objs)
}

// extractObjects is the fallback when the verb has no object at its right:
// any object child with its conjuncts, or the objects of a coordinated verb.
func (e *extractor) extractObjects(v int) []int {
	objs := []int{}
	for _, c := range e.tree.Children(v) {
		if Objects.Contains(e.tree.Token(c).Dep) {
			objs = append(objs, c)
		}
	}

	objs = append(objs, e.conjChildren(objs)...)
	if len(objs) > 0 {
		return objs
	}

	for _, c := range e.tree.Children(v) {
		tok := e.tree.Token(c)
		if !conjDeps.Contains(tok.Dep) || tok.Pos != "VERB" {
			continue
		}

		for _, cc := range e.tree.Children(c) {
			if Objects.Contains(e.tree.Token(cc).Dep) {
				objs = append(objs, cc)
			}
		}
	}

	return objs
}
