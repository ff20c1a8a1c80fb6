// Package pipelines provides ready-made graph constructors for the two
// reference workloads: word count and the inverted-index / TF-IDF ranking.
// They double as worked examples of composing a graph out of the builtin
// operator library.
package pipelines

import (
	"github.com/carlodf/dflow/builtin"
	"github.com/carlodf/dflow/graph"
)

// WordCount constructs a graph that counts the words appearing in textCol
// across all rows of the named input, emitting one row per distinct word
// with the count under countCol, ordered by (count, word).
func WordCount(input, textCol, countCol string) graph.Graph {
	return graph.FromIter(input).
		Map(builtin.FilterPunctuation(textCol)).
		Map(builtin.LowerCase(textCol)).
		Map(builtin.Split(textCol, nil)).
		Sort([]string{textCol}).
		Reduce(builtin.Count{Col: countCol}, []string{textCol}).
		Sort([]string{countCol, textCol})
}

// WordCountFromFile is WordCount reading rows from a file source spec
// (a path, glob, or file:// URL) through the given line parser instead of
// a bound input stream.
func WordCountFromFile(spec string, parser graph.Parser, textCol, countCol string) graph.Graph {
	return graph.FromFile(spec, parser).
		Map(builtin.FilterPunctuation(textCol)).
		Map(builtin.LowerCase(textCol)).
		Map(builtin.Split(textCol, nil)).
		Sort([]string{textCol}).
		Reduce(builtin.Count{Col: countCol}, []string{textCol}).
		Sort([]string{countCol, textCol})
}

// InvertedIndex constructs a graph that ranks every (document, word) pair
// of the named input by TF-IDF, keeping the three highest-ranked documents
// per word. docCol identifies the document, textCol holds its text, and
// the final score is written under resultCol.
//
// The input is read three times per run, once for each of the two branches
// built on the split words (IDF and TF) and once to count documents, so the
// bound thunk must produce an equivalent stream on each call.
func InvertedIndex(input, docCol, textCol, resultCol string) graph.Graph {
	const (
		docsCountCol = "total_docs"
		termOccCol   = "term_occ"
	)

	splitWords := graph.FromIter(input).
		Map(builtin.FilterPunctuation(textCol)).
		Map(builtin.LowerCase(textCol)).
		Map(builtin.Split(textCol, nil))

	countDocs := graph.FromIter(input).
		Sort([]string{docCol}).
		Reduce(builtin.FirstReducer{}, []string{docCol}).
		Reduce(builtin.Count{Col: docsCountCol}, nil)

	countIDF := splitWords.
		Sort([]string{docCol, textCol}).
		Reduce(builtin.FirstReducer{}, []string{docCol, textCol}).
		Sort([]string{textCol}).
		Reduce(builtin.Count{Col: termOccCol}, []string{textCol}).
		Join(builtin.InnerJoiner{}, countDocs, nil).
		Map(builtin.IDF(docsCountCol, termOccCol, "")).
		Sort([]string{textCol})

	countTF := splitWords.
		Sort([]string{docCol}).
		Reduce(builtin.TF{WordsCol: textCol}, []string{docCol}).
		Sort([]string{textCol})

	return countIDF.
		Join(builtin.InnerJoiner{}, countTF, []string{textCol}).
		Map(builtin.TF_IDF("tf", "idf", resultCol)).
		Map(builtin.Project([]string{docCol, textCol, resultCol})).
		Sort([]string{textCol}).
		Reduce(builtin.TopN{Col: resultCol, N: 3}, []string{textCol})
}
