// Package search is a small in-memory campsite name index backed by a finite state transducer.
package search

import (
	"bytes"
	"errors"
	"fmt"
	rege "regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"github.com/RadhiFadlillah/go-sastrawi"
	"github.com/blevesearch/vellum"
	"github.com/blevesearch/vellum/levenshtein"
	"github.com/blevesearch/vellum/regexp"
)

const (
	DEFAULT_LIMIT = 20
	// query tokens at least this long also match terms one edit away.
	FUZZY_MIN_RUNES = 4
	EDIT_DISTANCE   = 1
)

// NameIndex. term -> campsites posting lists over location name, site name and type.
type NameIndex struct {
	campsites []datastructure.Campsite
	termsFST  *vellum.FST
	postings  [][]int // fst output -> positions in campsites
	lev       *levenshtein.LevenshteinAutomatonBuilder
}

// BuildNameIndex indexes campsites. the slice is kept, not copied.
func BuildNameIndex(campsites []datastructure.Campsite) (*NameIndex, error) {
	termDocs := make(map[string][]int)
	for i, c := range campsites {
		seen := make(map[string]bool)
		for _, term := range sastrawi.Tokenize(c.LocationName + " " + c.SiteName + " " + strings.ReplaceAll(c.Type, "_", " ")) {
			if seen[term] {
				continue
			}
			seen[term] = true
			termDocs[term] = append(termDocs[term], i)
		}
	}

	sortedTerms := make([]string, 0, len(termDocs))
	for term := range termDocs {
		sortedTerms = append(sortedTerms, term)
	}
	sort.Strings(sortedTerms)

	var buf bytes.Buffer
	fstBuilder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}
	postings := make([][]int, 0, len(sortedTerms))
	for i, term := range sortedTerms {
		if err := fstBuilder.Insert([]byte(term), uint64(i)); err != nil {
			return nil, fmt.Errorf("error when inserting term %s: %w", term, err)
		}
		postings = append(postings, termDocs[term])
	}
	if err := fstBuilder.Close(); err != nil {
		return nil, err
	}
	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, err
	}

	lev, err := levenshtein.NewLevenshteinAutomatonBuilder(EDIT_DISTANCE, false)
	if err != nil {
		return nil, err
	}

	return &NameIndex{
		campsites: campsites,
		termsFST:  fst,
		postings:  postings,
		lev:       lev,
	}, nil
}

func (idx *NameIndex) Len() int {
	return len(idx.campsites)
}

func (idx *NameIndex) Terms() int {
	return len(idx.postings)
}

type scoredCampsite struct {
	pos   int
	score int
}

// Search. every query token matches index terms by prefix, and by one edit when it is long enough.
// campsites are ranked by the number of query tokens they match, ties by id.
func (idx *NameIndex) Search(query string, limit int) ([]datastructure.Campsite, error) {
	if limit <= 0 {
		limit = DEFAULT_LIMIT
	}
	queryTerms := sastrawi.Tokenize(query)
	if len(queryTerms) == 0 || len(idx.postings) == 0 {
		return []datastructure.Campsite{}, nil
	}

	scores := make(map[int]int)
	for _, qt := range queryTerms {
		termIDs, err := idx.matchTerm(qt)
		if err != nil {
			return nil, err
		}
		matched := make(map[int]bool)
		for _, termID := range termIDs {
			for _, pos := range idx.postings[termID] {
				matched[pos] = true
			}
		}
		for pos := range matched {
			scores[pos]++
		}
	}

	ranked := make([]scoredCampsite, 0, len(scores))
	for pos, score := range scores {
		ranked = append(ranked, scoredCampsite{pos: pos, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return idx.campsites[ranked[i].pos].ID < idx.campsites[ranked[j].pos].ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	result := make([]datastructure.Campsite, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, idx.campsites[r.pos])
	}
	return result, nil
}

// matchTerm returns the fst outputs of every term matching queryTerm.
func (idx *NameIndex) matchTerm(queryTerm string) ([]uint64, error) {
	prefixAutomaton, err := regexp.New(fmt.Sprintf(`%s.*`, rege.QuoteMeta(queryTerm)))
	if err != nil {
		return nil, fmt.Errorf("error when initializing regex automaton: %w", err)
	}
	termIDs, err := idx.collect(prefixAutomaton)
	if err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(queryTerm) < FUZZY_MIN_RUNES {
		return termIDs, nil
	}
	dfa, err := idx.lev.BuildDfa(queryTerm, EDIT_DISTANCE)
	if err != nil {
		return nil, err
	}
	fuzzy, err := idx.collect(dfa)
	if err != nil {
		return nil, err
	}
	return append(termIDs, fuzzy...), nil
}

func (idx *NameIndex) collect(a vellum.Automaton) ([]uint64, error) {
	termIDs := []uint64{}
	fstIt, err := idx.termsFST.Search(a, nil, nil)
	for err == nil {
		_, val := fstIt.Current()
		termIDs = append(termIDs, val)
		err = fstIt.Next()
	}
	if !errors.Is(err, vellum.ErrIteratorDone) {
		return nil, err
	}
	return termIDs, nil
}
