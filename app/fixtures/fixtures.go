package fixtures

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"postfeed/app/models"
	"postfeed/app/services"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demo []byte

// File is the YAML layout of a fixture file.
type File struct {
	Authors []Author `yaml:"authors"`
	Posts   []Post   `yaml:"posts"`
}

// Author is an author entry of a fixture file.
type Author struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Post is a post entry of a fixture file with its comments inline.
type Post struct {
	ID       int       `yaml:"id"`
	AuthorID int       `yaml:"author_id"`
	Content  string    `yaml:"content"`
	Comments []Comment `yaml:"comments"`
}

// Comment is a comment entry. It may be written as a plain string or as a
// mapping with id and content.
type Comment struct {
	ID      int    `yaml:"id"`
	Content string `yaml:"content"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (c *Comment) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Content = node.Value
		return nil
	}
	type plain Comment
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = Comment(p)
	return nil
}

// Demo returns the built-in demo dataset.
func Demo() (services.Dataset, error) {
	return parse(demo)
}

// Load reads a fixture file.
func Load(path string) (services.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Dataset{}, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return parse(data)
}

// Parse reads fixtures from r.
func Parse(r io.Reader) (services.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return services.Dataset{}, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (services.Dataset, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return services.Dataset{}, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return f.Dataset(), nil
}

// Dataset converts the file into records for CatalogService.Seed.
func (f File) Dataset() services.Dataset {
	var ds services.Dataset
	for _, a := range f.Authors {
		ds.Authors = append(ds.Authors, models.Author{ID: a.ID, Name: a.Name})
	}
	for _, p := range f.Posts {
		sp := services.SeedPost{
			Post: models.Post{ID: p.ID, AuthorID: p.AuthorID, Content: p.Content},
		}
		for _, c := range p.Comments {
			sp.Comments = append(sp.Comments, models.Comment{ID: c.ID, Content: c.Content})
		}
		ds.Posts = append(ds.Posts, sp)
	}
	return ds
}
