package inspect

// Inspector rewrites unknown slots into protocol actions.
type Inspector interface {
	Classify(insp *Inspection)
}

// Reducer folds existing actions into higher-level ones.
type Reducer interface {
	Reduce(insp *Inspection)
}

// Run applies one inspector: classify, prune, reduce when the inspector also reduces, prune.
func Run(in Inspector, insp *Inspection) {
	in.Classify(insp)
	insp.Prune()
	if r, ok := in.(Reducer); ok {
		r.Reduce(insp)
	}
	insp.Prune()
}
