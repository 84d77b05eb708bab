package moderation

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/forPelevin/gomoji"
)

// based on the code from https://github.com/RadhiFadlillah/go-bayesian/blob/master/classifier.go

// spamClass is alias of string, representing class of a document
type spamClass string

// document classes
const (
	classSpam spamClass = "spam"
	classHam  spamClass = "ham"
)

// document is a group of tokens with certain class
type document struct {
	spamClass spamClass
	tokens    []string
}

// BayesClassifier is a local naive bayes spam classifier trained on spam and
// ham samples, implements FallbackClassifier. Thread-safe, samples can be
// reloaded at runtime.
type BayesClassifier struct {
	learningResults    map[string]map[spamClass]int
	priorProbabilities map[spamClass]float64
	nDocumentByClass   map[spamClass]int
	nFrequencyByClass  map[spamClass]int
	nAllDocument       int

	minSpamProbability float64
	excludedTokens     map[string]struct{}

	lock sync.RWMutex
}

// BayesLoadResult is the result of loading training samples
type BayesLoadResult struct {
	ExcludedTokens int
	SpamSamples    int
	HamSamples     int
}

// NewBayesClassifier makes an untrained classifier. The minSpamProbability is
// the probability percentage (0-100) below which a spam classification is
// ignored, 0 disables the cutoff.
func NewBayesClassifier(minSpamProbability float64) *BayesClassifier {
	return &BayesClassifier{
		learningResults:    make(map[string]map[spamClass]int),
		priorProbabilities: make(map[spamClass]float64),
		nDocumentByClass:   make(map[spamClass]int),
		nFrequencyByClass:  make(map[spamClass]int),
		minSpamProbability: minSpamProbability,
		excludedTokens:     map[string]struct{}{},
	}
}

// Classify reports if the text looks like spam according to the trained model.
// An untrained classifier returns an error so the caller can fail open.
func (b *BayesClassifier) Classify(_ context.Context, text string) (spam bool, confidence float64, details string, err error) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	if b.nAllDocument == 0 {
		return false, 0, "", fmt.Errorf("classifier is not trained")
	}

	tm := b.tokenize(text)
	tokens := make([]string, 0, len(tm))
	for token := range tm {
		tokens = append(tokens, token)
	}

	class, prob, certain := b.classify(tokens...)
	isSpam := class == classSpam && certain && (b.minSpamProbability == 0 || prob >= b.minSpamProbability)
	return isSpam, prob / 100, fmt.Sprintf("probability of %s: %.2f%%", class, prob), nil
}

// LoadSamples trains the classifier from scratch on the given spam and ham
// samples, one sample per line. Excluded tokens are loaded first so they are
// dropped from sample tokenization as well.
func (b *BayesClassifier) LoadSamples(exclReader io.Reader, spamReaders, hamReaders []io.Reader) (BayesLoadResult, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.learningResults = make(map[string]map[spamClass]int)
	b.priorProbabilities = make(map[spamClass]float64)
	b.nDocumentByClass = make(map[spamClass]int)
	b.nFrequencyByClass = make(map[spamClass]int)
	b.nAllDocument = 0
	b.excludedTokens = map[string]struct{}{}

	if exclReader != nil {
		for t := range linesIterator(exclReader) {
			b.excludedTokens[strings.ToLower(t)] = struct{}{}
		}
	}
	lr := BayesLoadResult{ExcludedTokens: len(b.excludedTokens)}

	docs := []document{}
	for sample := range linesIterator(spamReaders...) {
		docs = append(docs, document{spamClass: classSpam, tokens: tokenKeys(b.tokenize(sample))})
		lr.SpamSamples++
	}
	for sample := range linesIterator(hamReaders...) {
		docs = append(docs, document{spamClass: classHam, tokens: tokenKeys(b.tokenize(sample))})
		lr.HamSamples++
	}

	b.learn(docs...)
	return lr, nil
}

// tokenize takes a string and returns a map where the keys are unique words (tokens)
// and the values are the frequencies of those words in the string.
// exclude tokens representing common words.
func (b *BayesClassifier) tokenize(inp string) map[string]int {
	isExcludedToken := func(token string) bool {
		_, ok := b.excludedTokens[strings.ToLower(token)]
		return ok
	}

	tokenFrequency := make(map[string]int)
	for _, token := range strings.Fields(inp) {
		if isExcludedToken(token) {
			continue
		}
		token = cleanEmoji(token)
		token = strings.Trim(token, ".,!?-:;()#")
		token = strings.ToLower(token)
		if len([]rune(token)) < 3 {
			continue
		}
		tokenFrequency[token]++
	}
	return tokenFrequency
}

// learn executes the learning process for this classifier
func (b *BayesClassifier) learn(docs ...document) {
	b.nAllDocument += len(docs)

	for _, doc := range docs {
		b.nDocumentByClass[doc.spamClass]++
		tokens := removeDuplicate(doc.tokens...)

		for _, token := range tokens {
			b.nFrequencyByClass[doc.spamClass]++

			if _, exist := b.learningResults[token]; !exist {
				b.learningResults[token] = make(map[spamClass]int)
			}

			b.learningResults[token][doc.spamClass]++
		}
	}

	for class, nDocument := range b.nDocumentByClass {
		b.priorProbabilities[class] = math.Log(float64(nDocument) / float64(b.nAllDocument))
	}
}

// classify executes the classifying process for tokens
func (b *BayesClassifier) classify(tokens ...string) (spamClass, float64, bool) {
	nVocabulary := len(b.learningResults)
	posteriorProbabilities := make(map[spamClass]float64)

	for class, priorProb := range b.priorProbabilities {
		posteriorProbabilities[class] = priorProb
	}
	tokens = removeDuplicate(tokens...)

	for class, freqByClass := range b.nFrequencyByClass {
		for _, token := range tokens {
			nToken := b.learningResults[token][class]
			posteriorProbabilities[class] += math.Log(float64(nToken+1) / float64(freqByClass+nVocabulary))
		}
	}

	probabilities := softmax(posteriorProbabilities) // apply softmax to posterior probabilities

	// find the best class and its probability
	var certain bool
	var bestClass spamClass
	var highestProb float64
	for class, prob := range probabilities {
		if highestProb == 0 || prob > highestProb {
			certain = true
			bestClass = class
			highestProb = prob
		} else if prob == highestProb {
			certain = false
		}
	}

	highestProb *= 100 // convert probability to percentage
	return bestClass, highestProb, certain
}

func removeDuplicate(tokens ...string) []string {
	mapTokens := make(map[string]struct{})
	newTokens := []string{}

	for _, token := range tokens {
		mapTokens[token] = struct{}{}
	}

	for key := range mapTokens {
		newTokens = append(newTokens, key)
	}

	return newTokens
}

func tokenKeys(tm map[string]int) []string {
	tokens := make([]string, 0, len(tm))
	for token := range tm {
		tokens = append(tokens, token)
	}
	return tokens
}

// softmax converts log probabilities to normalized probabilities
func softmax(logProbs map[spamClass]float64) map[spamClass]float64 {
	sum := 0.0
	probs := make(map[spamClass]float64)

	// convert log probabilities to standard probabilities
	for _, logProb := range logProbs {
		sum += math.Exp(logProb)
	}

	// normalize probabilities
	for class, logProb := range logProbs {
		probs[class] = math.Exp(logProb) / sum
	}

	return probs
}

// cleanEmoji removes all emojis from the string
func cleanEmoji(s string) string {
	return gomoji.RemoveEmojis(s)
}
