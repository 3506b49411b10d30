package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID is a CMS identifier that may arrive either as a JSON string or number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

type Image struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

type Stack struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image Image  `json:"image"`
}

type Application struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Image         Image   `json:"image"`
	LiveURL       string  `json:"liveUrl"`
	SourceCodeURL string  `json:"sourceCodeUrl"`
	Stacks        []Stack `json:"stacks"`
}

type Achievement struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	RelevantLink string `json:"relevantLink"`
}

type Volunteer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	RelevantLink string `json:"relevantLink"`
}

type Responsibility struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsOngoing   bool   `json:"isOngoing"`
}

type Vision struct {
	ID          ID     `json:"vId"`
	Description string `json:"description"`
}

func (v Vision) Paragraphs() []string { return Paragraphs(v.Description) }

type Product struct {
	ID          ID     `json:"id"`
	Description string `json:"description"`
	ProductID   string `json:"productId"`
}

func (p Product) Paragraphs() []string { return Paragraphs(p.Description) }

type Culture struct {
	ID          ID     `json:"id_Culture"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (c Culture) Paragraphs() []string { return Paragraphs(c.Description) }

type CorporateSocialResponsibility struct {
	ID          ID     `json:"csrId"`
	Description string `json:"desc"`
	Title       string `json:"title"`
}

// HomePageProps is the content served by the primary CMS.
type HomePageProps struct {
	Stacks           []Stack          `json:"stacks"`
	Applications     []Application    `json:"applications"`
	Achievements     []Achievement    `json:"achievements"`
	Volunteers       []Volunteer      `json:"volunteers"`
	Responsibilities []Responsibility `json:"responsibilities"`
}

// PixWingProps is the content served by the PixWing CMS.
type PixWingProps struct {
	Stacks                 []Stack                         `json:"pixwingstacks"`
	Visions                []Vision                        `json:"visions"`
	Products               []Product                       `json:"ourProducts"`
	Cultures               []Culture                       `json:"ourCultures"`
	CorporateSocialRespons []CorporateSocialResponsibility `json:"corprateSocialRs"`
}

// LandingPage is everything the landing page template needs.
type LandingPage struct {
	Home    HomePageProps `json:"initialHomePageProps"`
	PixWing PixWingProps  `json:"initialHomePagePropsPixWingAi"`
}

// Paragraphs splits CMS text on newlines, dropping blank lines.
func Paragraphs(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
