package quad

import "math"

// workspace holds the subintervals of an adaptive integration, kept in
// decreasing order of their error estimates through order.
type workspace struct {
	limit        int
	size         int
	nrmax        int
	i            int
	maximumLevel int
	alist        []float64
	blist        []float64
	rlist        []float64
	elist        []float64
	order        []int
	level        []int
}

func newWorkspace(limit int, a, b float64) *workspace {
	w := &workspace{
		limit: limit,
		alist: make([]float64, limit),
		blist: make([]float64, limit),
		rlist: make([]float64, limit),
		elist: make([]float64, limit),
		order: make([]int, limit),
		level: make([]int, limit),
	}
	w.alist[0] = a
	w.blist[0] = b
	return w
}

func (w *workspace) setInitialResult(result, err float64) {
	w.size = 1
	w.rlist[0] = result
	w.elist[0] = err
}

func (w *workspace) retrieve() (a, b, r, e float64) {
	i := w.i
	return w.alist[i], w.blist[i], w.rlist[i], w.elist[i]
}

func (w *workspace) update(a1, b1, area1, error1, a2, b2, area2, error2 float64) {
	iMax := w.i
	iNew := w.size
	newLevel := w.level[iMax] + 1

	if error2 > error1 {
		w.alist[iMax] = a2
		w.rlist[iMax] = area2
		w.elist[iMax] = error2
		w.level[iMax] = newLevel

		w.alist[iNew] = a1
		w.blist[iNew] = b1
		w.rlist[iNew] = area1
		w.elist[iNew] = error1
		w.level[iNew] = newLevel
	} else {
		w.blist[iMax] = b1
		w.rlist[iMax] = area1
		w.elist[iMax] = error1
		w.level[iMax] = newLevel

		w.alist[iNew] = a2
		w.blist[iNew] = b2
		w.rlist[iNew] = area2
		w.elist[iNew] = error2
		w.level[iNew] = newLevel
	}

	w.size++
	if newLevel > w.maximumLevel {
		w.maximumLevel = newLevel
	}
	w.sort()
}

// sort maintains the descending error order after an update.
func (w *workspace) sort() {
	last := w.size - 1
	iNrmax := w.nrmax
	iMaxErr := w.order[iNrmax]

	if last < 2 {
		w.order[0] = 0
		w.order[1] = 1
		w.i = iMaxErr
		return
	}

	errMax := w.elist[iMaxErr]
	for iNrmax > 0 && errMax > w.elist[w.order[iNrmax-1]] {
		w.order[iNrmax] = w.order[iNrmax-1]
		iNrmax--
	}

	top := last
	if last >= w.limit/2+2 {
		top = w.limit - last + 1
	}

	i := iNrmax + 1
	for i < top && errMax < w.elist[w.order[i]] {
		w.order[i-1] = w.order[i]
		i++
	}
	w.order[i-1] = iMaxErr

	errMin := w.elist[last]
	k := top - 1
	for k > i-2 && errMin >= w.elist[w.order[k]] {
		w.order[k+1] = w.order[k]
		k--
	}
	w.order[k+1] = last

	w.i = w.order[iNrmax]
	w.nrmax = iNrmax
}

func (w *workspace) largeInterval() bool {
	return w.level[w.i] < w.maximumLevel
}

func (w *workspace) increaseNrmax() bool {
	last := w.size - 1
	jupbnd := last
	if last > 1+w.limit/2 {
		jupbnd = w.limit + 1 - last
	}
	for k := w.nrmax; k <= jupbnd; k++ {
		iMax := w.order[w.nrmax]
		w.i = iMax
		if w.level[iMax] < w.maximumLevel {
			return true
		}
		w.nrmax++
	}
	return false
}

func (w *workspace) resetNrmax() {
	w.nrmax = 0
	w.i = w.order[0]
}

func (w *workspace) sum() float64 {
	var s float64
	for k := 0; k < w.size; k++ {
		s += w.rlist[k]
	}
	return s
}

// extrapolationTable is the state of Wynn's epsilon algorithm.
type extrapolationTable struct {
	n      int
	rlist2 [52]float64
	nres   int
	res3la [3]float64
}

func (t *extrapolationTable) append(y float64) {
	t.rlist2[t.n] = y
	t.n++
}

// qelg runs one step of the epsilon algorithm and returns the extrapolated
// limit together with its error estimate.
func (t *extrapolationTable) qelg() (float64, float64) {
	epstab := t.rlist2[:]
	n := t.n - 1

	current := epstab[n]
	absolute := dblMax
	relative := 5 * dblEpsilon * math.Abs(current)

	newelm := n / 2
	nOrig := n
	nFinal := n
	nresOrig := t.nres

	result := current
	abserr := dblMax

	if n < 2 {
		return current, math.Max(absolute, relative)
	}

	epstab[n+2] = epstab[n]
	epstab[n] = dblMax

	for i := 0; i < newelm; i++ {
		res := epstab[n-2*i+2]
		e0 := epstab[n-2*i-2]
		e1 := epstab[n-2*i-1]
		e2 := res

		e1abs := math.Abs(e1)
		delta2 := e2 - e1
		err2 := math.Abs(delta2)
		tol2 := math.Max(math.Abs(e2), e1abs) * dblEpsilon
		delta3 := e1 - e0
		err3 := math.Abs(delta3)
		tol3 := math.Max(e1abs, math.Abs(e0)) * dblEpsilon

		if err2 < tol2 && err3 < tol3 {
			// Convergence to machine accuracy.
			absolute = err2 + err3
			relative = 5 * dblEpsilon * math.Abs(res)
			return res, math.Max(absolute, relative)
		}

		e3 := epstab[n-2*i]
		epstab[n-2*i] = e1
		delta1 := e1 - e3
		err1 := math.Abs(delta1)
		tol1 := math.Max(e1abs, math.Abs(e3)) * dblEpsilon

		if err1 < tol1 || err2 < tol2 || err3 < tol3 {
			nFinal = 2 * i
			break
		}

		ss := (1/delta1 + 1/delta2) - 1/delta3
		if math.Abs(ss*e1) <= 0.0001 {
			nFinal = 2 * i
			break
		}

		res = e1 + 1/ss
		epstab[n-2*i] = res

		if e := err2 + math.Abs(res-e2) + err3; e <= abserr {
			abserr = e
			result = res
		}
	}

	const limexp = 50 - 1
	if nFinal == limexp {
		nFinal = 2 * (limexp / 2)
	}

	if nOrig%2 == 1 {
		for i := 0; i <= newelm; i++ {
			epstab[1+i*2] = epstab[i*2+3]
		}
	} else {
		for i := 0; i <= newelm; i++ {
			epstab[i*2] = epstab[i*2+2]
		}
	}

	if nOrig != nFinal {
		for i := 0; i <= nFinal; i++ {
			epstab[i] = epstab[nOrig-nFinal+i]
		}
	}

	t.n = nFinal + 1

	if nresOrig < 3 {
		t.res3la[nresOrig] = result
		abserr = dblMax
	} else {
		abserr = math.Abs(result-t.res3la[2]) + math.Abs(result-t.res3la[1]) + math.Abs(result-t.res3la[0])
		t.res3la[0] = t.res3la[1]
		t.res3la[1] = t.res3la[2]
		t.res3la[2] = result
	}

	t.nres = nresOrig + 1
	return result, math.Max(abserr, 5*dblEpsilon*math.Abs(result))
}
