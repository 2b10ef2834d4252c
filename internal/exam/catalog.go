package exam

import (
	"fmt"
	"path"
	"sort"
	"strconv"
)

// Season is the sitting of an official exam within a year.
type Season string

const (
	Summer Season = "summer"
	Winter Season = "winter"
)

const (
	// RandomID is the sentinel id of the synthetic exam assembled from all banks.
	RandomID = "random"

	// WrongAnswersID names the practice set built from previously missed questions.
	// It is never listed by the catalog.
	WrongAnswersID = "wrong-answers"
)

// Descriptor identifies one exam and where its questions live.
type Descriptor struct {
	ID     string
	Year   int
	Season Season
	// Source is the bank file relative to the banks root. Empty for RandomID.
	Source string
}

// IsRandom reports whether d is the synthetic random exam.
func (d Descriptor) IsRandom() bool {
	return d.ID == RandomID
}

// NotFoundError is returned when an exam id is not in the catalog.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("exam %q not found", e.ID)
}

// Catalog is an immutable, ordered registry of exam descriptors.
type Catalog struct {
	exams []Descriptor
	byID  map[string]int
}

// NewCatalog builds a catalog from descriptors. Ids must be unique.
func NewCatalog(exams []Descriptor) (*Catalog, error) {
	c := &Catalog{
		exams: make([]Descriptor, len(exams)),
		byID:  make(map[string]int, len(exams)),
	}
	copy(c.exams, exams)
	for i, d := range c.exams {
		if d.ID == "" {
			return nil, fmt.Errorf("exam at index %d has no id", i)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate exam id %q", d.ID)
		}
		if d.ID != RandomID && d.Source == "" {
			return nil, fmt.Errorf("exam %q has no source", d.ID)
		}
		c.byID[d.ID] = i
	}
	return c, nil
}

// List returns all exams in registry order, including the random sentinel.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, len(c.exams))
	copy(out, c.exams)
	return out
}

// Official returns every exam backed by a bank file.
func (c *Catalog) Official() []Descriptor {
	out := make([]Descriptor, 0, len(c.exams))
	for _, d := range c.exams {
		if !d.IsRandom() {
			out = append(out, d)
		}
	}
	return out
}

// ByID looks up an exam. Unknown ids return *NotFoundError.
func (c *Catalog) ByID(id string) (Descriptor, error) {
	i, ok := c.byID[id]
	if !ok {
		return Descriptor{}, &NotFoundError{ID: id}
	}
	return c.exams[i], nil
}

// SortForSelector orders exams the way the selector shows them: random first,
// then newest year first, winter before summer within a year.
func SortForSelector(exams []Descriptor) []Descriptor {
	out := make([]Descriptor, len(exams))
	copy(out, exams)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsRandom() != b.IsRandom() {
			return a.IsRandom()
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Season == Winter && b.Season == Summer
	})
	return out
}

// official builds a descriptor for a bank file stored as {year}/{season}/{file}.
func official(year int, season Season, file string) Descriptor {
	return Descriptor{
		ID:     fmt.Sprintf("%d-%s", year, season),
		Year:   year,
		Season: season,
		Source: path.Join(strconv.Itoa(year), string(season), file),
	}
}

// DefaultExams is the registry of the published citizenship test sittings.
var DefaultExams = []Descriptor{
	{ID: RandomID, Season: Summer},
	official(2024, Winter, "medborgerskabsproeven_2024_11_full.json"),
	official(2024, Summer, "medborgerskabsproeven_2024_05_full.json"),
	official(2023, Winter, "medborgerskabsproeven_2023_11_full.json"),
	official(2023, Summer, "medborgerskabsproeven_2023_05_full.json"),
	official(2022, Winter, "medborgerskabsproeven_2022_11_full.json"),
	official(2022, Summer, "medborgerskabsproeven_2022_05_full.json"),
	official(2021, Winter, "medborgerskabsproeven_2021_11_full.json"),
	official(2021, Summer, "medborgerskabsproeven_2021_05_full.json"),
	official(2020, Winter, "medborgerskabsproeven_2020_11_full.json"),
	official(2020, Summer, "medborgerskabsproeven_2020_06_full.json"),
	official(2019, Winter, "medborgerskabsproeven_2019_11_full.json"),
	official(2019, Summer, "medborgerskabsproeven_2019_06_full.json"),
	official(2018, Winter, "medborgerskabsproeven_2018_11_full.json"),
	official(2018, Summer, "medborgerskabsproeven_2018_06_full.json"),
	official(2017, Winter, "medborgerskabsproeven_2017_11_full.json"),
	official(2017, Summer, "medborgerskabsproeven_2017_06_full.json"),
	official(2016, Winter, "medborgerskabsproeven_2016_12_full.json"),
}

// DefaultCatalog returns the catalog of DefaultExams.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultExams)
	if err != nil {
		panic(err)
	}
	return c
}
