package migrator

import (
	"gorm.io/gorm"

	"archway_backend/internal/models"
	"archway_backend/internal/repositories"
)

// DatabaseSources builds one source per content kind, each backed by the
// corresponding repository. Only entities that still hold local media are
// loaded.
func DatabaseSources(
	db *gorm.DB,
	projects repositories.ProjectRepository,
	articles repositories.ArticleRepository,
	blog repositories.BlogRepository,
) []Source {
	return []Source{
		{
			Kind: "projects",
			Load: func() ([]Item, error) {
				rows, err := projects.FindWithLocalMedia(db)
				if err != nil {
					return nil, err
				}
				items := make([]Item, 0, len(rows))
				for i := range rows {
					p := &rows[i]
					items = append(items, Item{
						ID:    p.ID,
						Lists: []*models.MediaList{&p.Images, &p.Videos},
						Save:  func() error { return projects.Update(db, p) },
					})
				}
				return items, nil
			},
		},
		{
			Kind: "articles",
			Load: func() ([]Item, error) {
				rows, err := articles.FindWithLocalMedia(db)
				if err != nil {
					return nil, err
				}
				items := make([]Item, 0, len(rows))
				for i := range rows {
					a := &rows[i]
					items = append(items, Item{
						ID:    a.ID,
						Lists: []*models.MediaList{&a.Images},
						Save:  func() error { return articles.Update(db, a) },
					})
				}
				return items, nil
			},
		},
		{
			Kind: "blog",
			Load: func() ([]Item, error) {
				rows, err := blog.FindWithLocalMedia(db)
				if err != nil {
					return nil, err
				}
				items := make([]Item, 0, len(rows))
				for i := range rows {
					b := &rows[i]
					items = append(items, Item{
						ID:    b.ID,
						Lists: []*models.MediaList{&b.Images, &b.Videos},
						Save:  func() error { return blog.Update(db, b) },
					})
				}
				return items, nil
			},
		},
	}
}
