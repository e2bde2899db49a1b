package project

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/usecase"
)

// ErrProjectNotFound is returned by Delete when no project has the id.
var ErrProjectNotFound = errors.New("project not found")

// Store persists projects. MemoryStore and MongoStore implement it.
type Store interface {
	usecase.Finder[*Project]
	usecase.Searcher[*Project]
	usecase.GroupCounter
	usecase.Deleter
	usecase.Saver[*Project]

	// NextID reserves the next project identifier.
	NextID(ctx context.Context) (string, error)
}

// MemoryStore keeps projects in memory. Suitable for development and testing.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*Project
	seq      int64
}

func NewMemoryStore(projects ...*Project) *MemoryStore {
	s := &MemoryStore{projects: make(map[string]*Project, len(projects))}
	for _, p := range projects {
		s.projects[p.ID] = p.Clone()
		if n, err := strconv.ParseInt(strings.TrimPrefix(p.ID, "P"), 10, 64); err == nil && n > s.seq {
			s.seq = n
		}
	}
	return s
}

func (s *MemoryStore) NextID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return FormatID(s.seq), nil
}

func (s *MemoryStore) FindOne(ctx context.Context, opts *query.FindOptions) (*Project, bool, error) {
	projects, err := s.Find(ctx, opts)
	if err != nil || len(projects) == 0 {
		return nil, false, err
	}
	return projects[0], true, nil
}

func (s *MemoryStore) Find(ctx context.Context, opts *query.FindOptions) ([]*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.filter(opts.Criteria())
	sortProjects(matched, opts.OrderBy())

	start := min(opts.Offset(), len(matched))
	end := len(matched)
	if opts.Limit() > 0 {
		end = min(start+opts.Limit(), end)
	}

	out := make([]*Project, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *MemoryStore) Count(ctx context.Context, opts *query.FindOptions) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filter(opts.Criteria()))), nil
}

// CountBy groups by the countBy field, biggest groups first.
func (s *MemoryStore) CountBy(ctx context.Context, opts *query.FindOptions) ([]query.CountBy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int64{}
	keys := map[string]any{}
	for _, p := range s.filter(opts.Criteria()) {
		key := fieldValue(p, opts.CountBy())
		k := stringify(key)
		counts[k]++
		keys[k] = key
	}

	out := make([]query.CountBy, 0, len(counts))
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, query.CountBy{Key: keys[k], Count: counts[k]})
	}
	slices.SortStableFunc(out, func(a, b query.CountBy) int { return cmp.Compare(b.Count, a.Count) })
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, p *Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) filter(c query.Criteria) []*Project {
	var out []*Project
	for _, id := range slices.Sorted(maps.Keys(s.projects)) {
		if p := s.projects[id]; matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *Project, c query.Criteria) bool {
	if id, ok := c.ID(); ok && stringify(id) != p.ID {
		return false
	}
	for key, value := range map[string]string{
		CriterionStatus:   string(p.status),
		CriterionBorough:  p.BoroughID,
		CriterionExecutor: p.ExecutorID,
		CriterionType:     p.TypeID,
	} {
		if c.Has(key) && !slices.Contains(c.List(key), value) {
			return false
		}
	}
	if v, ok := c.Get(CriterionStartYear); ok && !yearMatches(p.StartYear, v) {
		return false
	}
	if q, ok := c.Get(CriterionSearchText); ok {
		needle := strings.ToLower(stringify(q))
		if !strings.Contains(strings.ToLower(p.Name), needle) && !strings.Contains(strings.ToLower(p.ID), needle) {
			return false
		}
	}
	return true
}

func yearMatches(year int, v any) bool {
	r, ok := v.(query.Range)
	if !ok {
		n, ok := toYear(v)
		return ok && n == year
	}
	if from, ok := toYear(r.From); ok && year < from {
		return false
	}
	if to, ok := toYear(r.To); ok && year > to {
		return false
	}
	return true
}

func toYear(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil
	}
	return 0, false
}

func fieldValue(p *Project, field string) any {
	switch field {
	case "id":
		return p.ID
	case "name":
		return p.Name
	case "status":
		return string(p.status)
	case "boroughId":
		return p.BoroughID
	case "executorId":
		return p.ExecutorID
	case "typeId":
		return p.TypeID
	case "startYear":
		return p.StartYear
	case "endYear":
		return p.EndYear
	case "createdAt":
		return p.CreatedAt
	case "updatedAt":
		return p.UpdatedAt
	}
	return nil
}

func sortProjects(projects []*Project, orderBy []query.Order) {
	slices.SortStableFunc(projects, func(a, b *Project) int {
		for _, o := range orderBy {
			c := compare(fieldValue(a, o.Field), fieldValue(b, o.Field))
			if o.Direction == query.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func compare(a, b any) int {
	switch x := a.(type) {
	case int:
		y, _ := b.(int)
		return cmp.Compare(x, y)
	case string:
		y, _ := b.(string)
		return cmp.Compare(x, y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	}
	return 0
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

var _ Store = (*MemoryStore)(nil)
