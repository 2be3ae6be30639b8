package persistence

import (
	"encoding/json"

	"github.com/portfolio/backend/internal/domain/content"
)

// ProjectModel is the SQLite row shape for one project. Seq preserves
// insertion order (the collection's storage order); ProjectID carries the
// public time-based id. Technologies are stored as a JSON array so the column
// round-trips the domain slice without a join table.
type ProjectModel struct {
	Seq          uint    `gorm:"primaryKey;autoIncrement"`
	ProjectID    string  `gorm:"column:project_id;uniqueIndex;size:64"`
	Title        string  `gorm:"size:255"`
	TitleURL     string  `gorm:"column:title_url;size:2048"`
	Description  string  `gorm:"type:text"`
	Technologies string  `gorm:"type:text"`
	Date         string  `gorm:"size:64"`
	MediaURL     *string `gorm:"column:media_url;size:2048"`
	MediaType    *string `gorm:"column:media_type;size:16"`
}

// TableName overrides the GORM table name
func (ProjectModel) TableName() string {
	return "projects"
}

// AboutModel is the single-row table behind the about singleton.
type AboutModel struct {
	ID      uint   `gorm:"primaryKey"`
	Content string `gorm:"type:text"`
}

// TableName overrides the GORM table name
func (AboutModel) TableName() string {
	return "about_contents"
}

func toProjectModel(p *content.Project) (ProjectModel, error) {
	techs, err := json.Marshal(content.NormalizeTechnologies(p.Technologies))
	if err != nil {
		return ProjectModel{}, err
	}
	return ProjectModel{
		ProjectID:    p.ID,
		Title:        p.Title,
		TitleURL:     p.TitleURL,
		Description:  p.Description,
		Technologies: string(techs),
		Date:         p.Date,
		MediaURL:     p.MediaURL,
		MediaType:    p.MediaType,
	}, nil
}

func toDomainProject(m *ProjectModel) (content.Project, error) {
	var techs []string
	if m.Technologies != "" {
		if err := json.Unmarshal([]byte(m.Technologies), &techs); err != nil {
			return content.Project{}, err
		}
	}
	if techs == nil {
		techs = []string{}
	}
	p := content.Project{
		ID:           m.ProjectID,
		Title:        m.Title,
		TitleURL:     m.TitleURL,
		Description:  m.Description,
		Technologies: techs,
		Date:         m.Date,
		MediaURL:     m.MediaURL,
		MediaType:    m.MediaType,
	}
	return p.Clone(), nil
}
