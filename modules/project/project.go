package project

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
)

type Status string

const (
	StatusWished             Status = "wished"
	StatusPlanned            Status = "planned"
	StatusReplanned          Status = "replanned"
	StatusPostponed          Status = "postponed"
	StatusProgrammed         Status = "programmed"
	StatusPreliminaryOrdered Status = "preliminaryOrdered"
	StatusFinalOrdered       Status = "finalOrdered"
	StatusCanceled           Status = "canceled"
)

// Statuses lists every project status.
var Statuses = []Status{
	StatusWished,
	StatusPlanned,
	StatusReplanned,
	StatusPostponed,
	StatusProgrammed,
	StatusPreliminaryOrdered,
	StatusFinalOrdered,
	StatusCanceled,
}

// IDPattern matches project identifiers: "P" followed by five digits.
var IDPattern = regexp.MustCompile(`^P\d{5}$`)

// FormatID formats a sequence number as a project identifier.
func FormatID(seq int64) string {
	return fmt.Sprintf("P%05d", seq)
}

const (
	minYear = 2000
	maxYear = 2100
)

// Geometry is a GeoJSON geometry as stored on the project.
type Geometry struct {
	Type        string `json:"type" bson:"type"`
	Coordinates any    `json:"coordinates" bson:"coordinates"`
}

func (g Geometry) GeometryType() string     { return g.Type }
func (g Geometry) GeometryCoordinates() any { return g.Coordinates }

// Intervention is a planned work on an asset, attached to a project.
type Intervention struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	TypeID    string `json:"interventionTypeId" bson:"interventionTypeId"`
	AssetType string `json:"assetType" bson:"assetType"`
	Year      int    `json:"planificationYear" bson:"planificationYear"`
}

// StatusChange records one applied transition.
type StatusChange struct {
	From Status    `json:"from" bson:"from"`
	To   Status    `json:"to" bson:"to"`
	At   time.Time `json:"at" bson:"at"`
}

// Project is a planned set of interventions on a territory. Build it with
// New; change its status only through the state machine.
type Project struct {
	ID            string
	Name          string
	BoroughID     string
	ExecutorID    string
	TypeID        string
	StartYear     int
	EndYear       int
	Geometry      Geometry
	Interventions []Intervention
	History       []StatusChange
	CreatedAt     time.Time
	UpdatedAt     time.Time

	status Status
}

func (p *Project) Status() Status { return p.status }

// Clone returns a deep enough copy for the slices to be modified freely.
func (p *Project) Clone() *Project {
	c := *p
	c.Interventions = slices.Clone(p.Interventions)
	c.History = slices.Clone(p.History)
	return &c
}

// Props are the inputs of New.
type Props struct {
	ID            string
	Name          string
	Status        Status
	BoroughID     string
	ExecutorID    string
	TypeID        string
	StartYear     int
	EndYear       int
	Geometry      any
	Interventions []Intervention
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Guard checks the shape of props. Taxonomy codes are checked separately by
// TaxonomyRefs since they need reference data.
func Guard(props Props) guard.Outcome {
	outcome := guard.Validate(
		guard.Argument{Name: "id", Value: props.ID, Checks: []guard.CheckKind{guard.Required, guard.MatchesPattern}, Extra: guard.Extra(IDPattern)},
		guard.Argument{Name: "name", Value: props.Name, Checks: []guard.CheckKind{guard.NotEmptyString}},
		guard.Argument{Name: "status", Value: string(props.Status), Checks: []guard.CheckKind{guard.NotEmptyString, guard.OneOf}, Extra: statusExtra()},
		guard.Argument{Name: "boroughId", Value: props.BoroughID, Checks: []guard.CheckKind{guard.NotEmptyString}},
		guard.Argument{Name: "executorId", Value: props.ExecutorID, Checks: []guard.CheckKind{guard.NotEmptyString}},
		guard.Argument{Name: "typeId", Value: props.TypeID, Checks: []guard.CheckKind{guard.NotEmptyString}},
		guard.Argument{Name: "startYear", Value: props.StartYear, Checks: []guard.CheckKind{guard.Integer, guard.InRange}, Extra: guard.Extra(minYear, maxYear)},
		guard.Argument{Name: "endYear", Value: props.EndYear, Checks: []guard.CheckKind{guard.Integer, guard.InRange}, Extra: guard.Extra(minYear, maxYear)},
		guard.Argument{Name: "geometry", Value: props.Geometry, Checks: []guard.CheckKind{guard.Required, guard.ValidGeometry}},
	)
	return guard.Combine(
		outcome,
		guard.When(props.EndYear >= props.StartYear, guard.BusinessRule("endYear", "endYear must be greater than or equal to startYear")),
		interventionsGuard(props),
	)
}

func interventionsGuard(props Props) guard.Outcome {
	var outcomes []guard.Outcome
	for i, in := range props.Interventions {
		target := fmt.Sprintf("interventions[%d]", i)
		outcomes = append(outcomes,
			guard.Check(guard.Argument{Name: target + ".id", Value: in.ID, Checks: []guard.CheckKind{guard.NotEmptyString}}),
			guard.When(in.Year == 0 || (in.Year >= props.StartYear && in.Year <= props.EndYear),
				guard.BusinessRule(target+".planificationYear", "intervention year must be within the project years")),
		)
	}
	return guard.Combine(outcomes...)
}

// TaxonomyRefs lists the reference codes props points to.
func TaxonomyRefs(props Props) []taxonomy.Ref {
	refs := []taxonomy.Ref{
		{Target: "boroughId", Group: taxonomy.GroupBorough, Value: props.BoroughID},
		{Target: "executorId", Group: taxonomy.GroupExecutor, Value: props.ExecutorID},
		{Target: "typeId", Group: taxonomy.GroupProjectType, Value: props.TypeID},
	}
	for i, in := range props.Interventions {
		refs = append(refs,
			taxonomy.Ref{Target: fmt.Sprintf("interventions[%d].interventionTypeId", i), Group: taxonomy.GroupInterventionType, Value: in.TypeID},
			taxonomy.Ref{Target: fmt.Sprintf("interventions[%d].assetType", i), Group: taxonomy.GroupAssetType, Value: in.AssetType},
		)
	}
	return refs
}

// New is the only way to build a Project. Status defaults to planned.
func New(props Props) result.Result[*Project] {
	if props.Status == "" {
		props.Status = StatusPlanned
	}
	if outcome := Guard(props); outcome.IsFailure() {
		return result.Fail[*Project](outcome.Failures)
	}

	geometry, ok := props.Geometry.(Geometry)
	if !ok {
		geometry = toGeometry(props.Geometry)
	}
	return result.Ok(&Project{
		ID:            props.ID,
		Name:          props.Name,
		BoroughID:     props.BoroughID,
		ExecutorID:    props.ExecutorID,
		TypeID:        props.TypeID,
		StartYear:     props.StartYear,
		EndYear:       props.EndYear,
		Geometry:      geometry,
		Interventions: slices.Clone(props.Interventions),
		CreatedAt:     props.CreatedAt,
		UpdatedAt:     props.UpdatedAt,
		status:        props.Status,
	})
}

// restore rebuilds a stored project without guarding it again.
func restore(p Project, status Status) *Project {
	p.status = status
	return &p
}

func toGeometry(v any) Geometry {
	switch g := v.(type) {
	case *Geometry:
		return *g
	case guard.Geometry:
		return Geometry{Type: g.GeometryType(), Coordinates: g.GeometryCoordinates()}
	case map[string]any:
		typ, _ := g["type"].(string)
		return Geometry{Type: typ, Coordinates: g["coordinates"]}
	case json.RawMessage:
		return geometryFromJSON(g)
	case []byte:
		return geometryFromJSON(g)
	case string:
		return geometryFromJSON([]byte(g))
	}
	return Geometry{}
}

func geometryFromJSON(raw []byte) Geometry {
	var g Geometry
	_ = json.Unmarshal(raw, &g)
	return g
}

func statusExtra() []any {
	extra := make([]any, 0, len(Statuses))
	for _, s := range Statuses {
		extra = append(extra, string(s))
	}
	return extra
}
