package nlp

import "strings"

type Processor struct {
	normalizer *Normalizer
	extractor  *Extractor
	classifier *Classifier
}

func NewProcessor() IProcessor {
	normalizer := NewNormalizer()
	classifier := NewClassifier(normalizer)

	return &Processor{
		normalizer: normalizer,
		extractor:  NewExtractor(normalizer, classifier.Vocabulary()),
		classifier: classifier,
	}
}

func (p *Processor) Analyze(text string) Analysis {
	raw := strings.TrimSpace(text)
	normalized := p.normalizer.Normalize(raw)

	return Analysis{
		Raw:        raw,
		Normalized: normalized,
		Tokens:     p.normalizer.Tokens(normalized),
		IsQuestion: p.normalizer.IsQuestion(raw, normalized),
		Entities:   p.extractor.Extract(raw),
	}
}

func (p *Processor) Classify(analysis Analysis) IntentResult {
	return p.classifier.Classify(analysis.Normalized)
}

func (p *Processor) Process(text string) (Analysis, IntentResult) {
	analysis := p.Analyze(text)
	return analysis, p.Classify(analysis)
}
