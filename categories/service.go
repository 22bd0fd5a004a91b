package categories

import (
	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/log"
)

// predefined is the reference catalog, seeded at startup.
var predefined = []string{
	"Artificial Intelligence",
	"Machine Learning",
	"Data Science",
	"Computer Vision",
	"Natural Language Processing",
	"Robotics",
	"Neuroscience",
	"Bioinformatics",
}

type Service struct {
	repository researchhub.CategoryRepository
	logger     log.Logger
}

func NewService(repository researchhub.CategoryRepository, logger log.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// Seed inserts the predefined categories missing from the store. It is
// idempotent and safe to run on every start.
func (s *Service) Seed() error {
	for _, name := range predefined {
		_, err := s.repository.GetByName(name)
		if err == nil {
			continue
		} else if !errors.IsNotFound(err) {
			return err
		}

		category := researchhub.Category{
			Name:        name,
			Description: "Research papers in " + name,
		}
		if err := s.repository.Insert(&category); err != nil {
			return err
		}
		s.logger.Printf("category %s seeded", name)
	}
	return nil
}

func (s *Service) List() ([]*researchhub.Category, error) {
	return s.repository.List()
}

func (s *Service) Get(id int) (*researchhub.Category, error) {
	return s.repository.Get(id)
}
