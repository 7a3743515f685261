package handler

import (
	"github.com/sihul/sihul-backend/internal/repository"
)

// CatalogHandler bundles the repositories behind the academic catalog:
// faculties, programs, subjects, student groups and academic periods.
type CatalogHandler struct {
	Faculties *repository.FacultyRepo
	Programs  *repository.ProgramRepo
	Subjects  *repository.SubjectRepo
	Groups    *repository.GroupRepo
	Periods   *repository.PeriodRepo
}

// NewCatalogHandler constructs a CatalogHandler and panics on nil deps.
func NewCatalogHandler(f *repository.FacultyRepo, p *repository.ProgramRepo,
	s *repository.SubjectRepo, g *repository.GroupRepo, ap *repository.PeriodRepo) *CatalogHandler {
	if f == nil || p == nil || s == nil || g == nil || ap == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Faculties: f, Programs: p, Subjects: s, Groups: g, Periods: ap}
}
