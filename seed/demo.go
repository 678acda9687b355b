// Package seed creates the public demo decks.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
)

type Card struct {
	Question         string
	Answer           string
	SpacedRepetition bool
}

type Deck struct {
	Name        string
	Description string
	Cards       []Card
}

var DemoDecks = []Deck{
	{
		Name:        "Biology 101",
		Description: "Essential biology concepts for beginners",
		Cards: []Card{
			{"What is the powerhouse of the cell?", "Mitochondria - they produce ATP through cellular respiration", true},
			{"What is photosynthesis?", "The process by which plants convert sunlight, water, and CO₂ into glucose and oxygen", true},
			{"What is DNA?", "Deoxyribonucleic acid - the molecule that carries genetic information", false},
			{"What are the three types of RNA?", "mRNA (messenger), tRNA (transfer), and rRNA (ribosomal)", true},
		},
	},
	{
		Name:        "Chemistry Basics",
		Description: "Fundamental chemistry concepts",
		Cards: []Card{
			{"What is the chemical symbol for water?", "H₂O - Two hydrogen atoms bonded to one oxygen atom", false},
			{"What is an atom?", "The smallest unit of matter that retains the properties of an element", true},
			{"What is the periodic table?", "A tabular arrangement of chemical elements organized by atomic number", false},
		},
	},
	{
		Name:        "World History",
		Description: "Important historical events and figures",
		Cards: []Card{
			{`Who wrote "Romeo and Juliet"?`, "William Shakespeare - written around 1594-1596", false},
			{"When did World War II end?", "September 2, 1945 - when Japan formally surrendered", true},
		},
	},
}

// Result reports what happened to one demo deck.
type Result struct {
	Deck    string
	Created bool
	Cards   int
}

// Demo creates each demo deck unless a deck with the same name exists.
// Running it again changes nothing.
func Demo(ctx context.Context, s *store.Store) ([]Result, error) {
	results := make([]Result, 0, len(DemoDecks))
	for _, d := range DemoDecks {
		_, err := s.DeckByName(ctx, d.Name)
		if err == nil {
			results = append(results, Result{Deck: d.Name})
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return results, err
		}

		deck := models.Deck{Name: d.Name, Description: d.Description, IsPublic: true}
		cards := make([]models.Flashcard, 0, len(d.Cards))
		for i, c := range d.Cards {
			cards = append(cards, models.Flashcard{
				Question:         c.Question,
				Answer:           c.Answer,
				SpacedRepetition: c.SpacedRepetition,
				Order:            i,
			})
		}
		if err := s.CreateDeckWithCards(ctx, &deck, cards); err != nil {
			return results, fmt.Errorf("seed %s: %w", d.Name, err)
		}
		results = append(results, Result{Deck: d.Name, Created: true, Cards: len(cards)})
	}
	return results, nil
}
