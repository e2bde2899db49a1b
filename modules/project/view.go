package project

import (
	"context"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
)

// View is the output shape of a project. Unselected fields are left empty
// and omitted from JSON.
type View struct {
	ID              string         `json:"id"`
	Name            string         `json:"name,omitempty"`
	Status          Status         `json:"status,omitempty"`
	BoroughID       string         `json:"boroughId,omitempty"`
	ExecutorID      string         `json:"executorId,omitempty"`
	TypeID          string         `json:"typeId,omitempty"`
	StartYear       int            `json:"startYear,omitempty"`
	EndYear         int            `json:"endYear,omitempty"`
	Geometry        *Geometry      `json:"geometry,omitempty"`
	InterventionIDs []string       `json:"interventionIds,omitempty"`
	Interventions   []Intervention `json:"interventions,omitempty"`
	History         []StatusChange `json:"history,omitempty"`
	CreatedAt       *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time     `json:"updatedAt,omitempty"`
}

// ToView maps a project, keeping the selected fields. Interventions are
// listed by id unless the interventions relation is expanded.
func ToView(_ context.Context, p *Project, opts *query.FindOptions) (View, error) {
	sel := func(field string) bool { return opts == nil || opts.Selects(field) }

	v := View{ID: p.ID}
	if sel("name") {
		v.Name = p.Name
	}
	if sel("status") {
		v.Status = p.status
	}
	if sel("boroughId") {
		v.BoroughID = p.BoroughID
	}
	if sel("executorId") {
		v.ExecutorID = p.ExecutorID
	}
	if sel("typeId") {
		v.TypeID = p.TypeID
	}
	if sel("startYear") {
		v.StartYear = p.StartYear
	}
	if sel("endYear") {
		v.EndYear = p.EndYear
	}
	if sel("geometry") {
		g := p.Geometry
		v.Geometry = &g
	}
	if sel("interventions") {
		if opts != nil && opts.HasExpand(ExpandInterventions) {
			v.Interventions = p.Interventions
		} else {
			for _, in := range p.Interventions {
				v.InterventionIDs = append(v.InterventionIDs, in.ID)
			}
		}
	}
	if sel("history") {
		v.History = p.History
	}
	if sel("createdAt") && !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		v.CreatedAt = &t
	}
	if sel("updatedAt") && !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		v.UpdatedAt = &t
	}
	return v, nil
}
