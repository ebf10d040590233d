package loader

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clinrule/qavalidator/question"
)

// catalogFile is the YAML catalog document shape.
type catalogFile struct {
	QuestionSets []yamlQuestionSet `yaml:"questionSets"`
	Questions    []yamlQuestion    `yaml:"questions"`
}

type yamlQuestionSet struct {
	ID        string            `yaml:"id"`
	Questions []yamlQuestionRef `yaml:"questions"`
}

type yamlQuestionRef struct {
	QuestionID string `yaml:"questionId"`
	Required   bool   `yaml:"required"`
}

type yamlQuestion struct {
	ID          string           `yaml:"id"`
	Code        yamlCoding       `yaml:"code"`
	AnswerType  string           `yaml:"answerType"`
	Unit        string           `yaml:"unit"`
	Constraints *yamlConstraints `yaml:"constraints"`
	Binding     *yamlBinding     `yaml:"valueSetBinding"`
}

type yamlCoding struct {
	System  string `yaml:"system"`
	Code    string `yaml:"code"`
	Display string `yaml:"display"`
}

type yamlConstraints struct {
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	MaxLength *int     `yaml:"maxLength"`
	Regex     string   `yaml:"regex"`
}

type yamlBinding struct {
	URL      string `yaml:"url"`
	Strength string `yaml:"bindingStrength"`
}

// LoadCatalog reads a YAML catalog document into a catalog under the
// given project.
func LoadCatalog(r io.Reader, projectID string, cat *question.InMemoryCatalog) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	for _, ys := range doc.QuestionSets {
		if ys.ID == "" {
			return fmt.Errorf("question set without id")
		}
		qs := &question.QuestionSet{ID: ys.ID}
		for _, ref := range ys.Questions {
			qs.Questions = append(qs.Questions, question.QuestionRef{
				QuestionID: ref.QuestionID,
				Required:   ref.Required,
			})
		}
		cat.AddQuestionSet(projectID, qs)
	}

	for _, yq := range doc.Questions {
		if yq.ID == "" {
			return fmt.Errorf("question without id")
		}
		q := &question.Question{
			ID:         yq.ID,
			AnswerType: question.ParseAnswerType(yq.AnswerType),
			Unit:       yq.Unit,
			Code: question.Coding{
				System:  yq.Code.System,
				Code:    yq.Code.Code,
				Display: yq.Code.Display,
			},
		}
		if c := yq.Constraints; c != nil {
			q.Constraints = &question.Constraints{
				Min:       c.Min,
				Max:       c.Max,
				MaxLength: c.MaxLength,
				Regex:     c.Regex,
			}
		}
		if b := yq.Binding; b != nil {
			q.Binding = &question.ValueSetBinding{
				URL:      b.URL,
				Strength: question.BindingStrength(b.Strength),
			}
		}
		cat.AddQuestion(projectID, q)
	}
	return nil
}

// LoadCatalogFile reads a YAML catalog file into a catalog.
func LoadCatalogFile(path, projectID string, cat *question.InMemoryCatalog) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	if err := LoadCatalog(f, projectID, cat); err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}
	return nil
}
