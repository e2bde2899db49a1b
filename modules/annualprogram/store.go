package annualprogram

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/mongo"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/usecase"
)

var ErrAnnualProgramNotFound = errors.New("annual program not found")

type Store interface {
	usecase.Finder[*AnnualProgram]
	usecase.Searcher[*AnnualProgram]
	usecase.GroupCounter
	usecase.Deleter
	usecase.Saver[*AnnualProgram]
}

// MemoryStore keeps annual programs in memory. Suitable for development and testing.
type MemoryStore struct {
	mu       sync.RWMutex
	programs map[string]AnnualProgram
}

func NewMemoryStore(programs ...*AnnualProgram) *MemoryStore {
	s := &MemoryStore{programs: make(map[string]AnnualProgram, len(programs))}
	for _, a := range programs {
		s.programs[a.ID] = *a
	}
	return s
}

func (s *MemoryStore) FindOne(ctx context.Context, opts *query.FindOptions) (*AnnualProgram, bool, error) {
	found, err := s.Find(ctx, opts)
	if err != nil || len(found) == 0 {
		return nil, false, err
	}
	return found[0], true, nil
}

func (s *MemoryStore) Find(ctx context.Context, opts *query.FindOptions) ([]*AnnualProgram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.filter(opts.Criteria())
	slices.SortStableFunc(matched, func(a, b AnnualProgram) int {
		for _, o := range opts.OrderBy() {
			c := cmp.Compare(sortKey(a, o.Field), sortKey(b, o.Field))
			if o.Direction == query.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	start := min(opts.Offset(), len(matched))
	end := len(matched)
	if opts.Limit() > 0 {
		end = min(start+opts.Limit(), end)
	}
	out := make([]*AnnualProgram, 0, end-start)
	for _, a := range matched[start:end] {
		out = append(out, &a)
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

func (s *MemoryStore) CountBy(ctx context.Context, opts *query.FindOptions) ([]query.CountBy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int64{}
	for _, a := range s.filter(opts.Criteria()) {
		counts[sortKey(a, opts.CountBy())]++
	}
	out := make([]query.CountBy, 0, len(counts))
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, query.CountBy{Key: k, Count: counts[k]})
	}
	slices.SortStableFunc(out, func(a, b query.CountBy) int { return cmp.Compare(b.Count, a.Count) })
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, a *AnnualProgram) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs[a.ID] = *a
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.programs[id]; !ok {
		return ErrAnnualProgramNotFound
	}
	delete(s.programs, id)
	return nil
}

func (s *MemoryStore) filter(c query.Criteria) []AnnualProgram {
	var out []AnnualProgram
	for _, id := range slices.Sorted(maps.Keys(s.programs)) {
		a := s.programs[id]
		if v, ok := c.ID(); ok && fmt.Sprint(v) != a.ID {
			continue
		}
		if c.Has(CriterionStatus) && !slices.Contains(c.List(CriterionStatus), string(a.status)) {
			continue
		}
		if c.Has(CriterionExecutor) && !slices.Contains(c.List(CriterionExecutor), a.ExecutorID) {
			continue
		}
		if v, ok := c.Get(CriterionYear); ok && !yearMatches(a.Year, v) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func yearMatches(year int, v any) bool {
	r, ok := v.(query.Range)
	if !ok {
		return fmt.Sprint(v) == strconv.Itoa(year)
	}
	if r.From != nil && fmt.Sprint(r.From) > strconv.Itoa(year) {
		return false
	}
	if r.To != nil && fmt.Sprint(r.To) < strconv.Itoa(year) {
		return false
	}
	return true
}

// sortKey renders a field so that string order matches value order. Years
// have four digits.
func sortKey(a AnnualProgram, field string) string {
	switch field {
	case "id":
		return a.ID
	case "executorId":
		return a.ExecutorID
	case "year":
		return strconv.Itoa(a.Year)
	case "status":
		return string(a.status)
	case "createdAt":
		return a.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return ""
}

const CollectionName = "annualPrograms"

type document struct {
	ID          string    `bson:"_id"`
	ExecutorID  string    `bson:"executorId"`
	Year        int       `bson:"year"`
	Description string    `bson:"description,omitempty"`
	BudgetCap   float64   `bson:"budgetCap"`
	SharedRoles []string  `bson:"sharedRoles,omitempty"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// MongoStore persists annual programs in MongoDB.
type MongoStore struct {
	*mongo.Repository[*AnnualProgram, document]
}

func NewMongoStore(db *mongodriver.Database) *MongoStore {
	return &MongoStore{mongo.NewRepository(db.Collection(CollectionName), mongo.Mapping[*AnnualProgram, document]{
		ToDocument: func(a *AnnualProgram) document {
			return document{
				ID:          a.ID,
				ExecutorID:  a.ExecutorID,
				Year:        a.Year,
				Description: a.Description,
				BudgetCap:   a.BudgetCap,
				SharedRoles: a.SharedRoles,
				Status:      string(a.status),
				CreatedAt:   a.CreatedAt,
				UpdatedAt:   a.UpdatedAt,
			}
		},
		FromDocument: func(d document) (*AnnualProgram, error) {
			return &AnnualProgram{
				ID:          d.ID,
				ExecutorID:  d.ExecutorID,
				Year:        d.Year,
				Description: d.Description,
				BudgetCap:   d.BudgetCap,
				SharedRoles: d.SharedRoles,
				CreatedAt:   d.CreatedAt,
				UpdatedAt:   d.UpdatedAt,
				status:      Status(d.Status),
			}, nil
		},
		ID:        func(a *AnnualProgram) any { return a.ID },
		Criterion: yearCriterion,
	})}
}

// yearCriterion turns year values sent as strings into numbers.
func yearCriterion(key string, value any) (bson.E, bool) {
	if key != CriterionYear {
		return bson.E{}, false
	}
	if r, ok := value.(query.Range); ok {
		cond := bson.D{}
		if n, err := strconv.Atoi(fmt.Sprint(r.From)); r.From != nil && err == nil {
			cond = append(cond, bson.E{Key: "$gte", Value: n})
		}
		if n, err := strconv.Atoi(fmt.Sprint(r.To)); r.To != nil && err == nil {
			cond = append(cond, bson.E{Key: "$lte", Value: n})
		}
		if len(cond) == 0 {
			return bson.E{}, true
		}
		return bson.E{Key: CriterionYear, Value: cond}, true
	}
	n, err := strconv.Atoi(fmt.Sprint(value))
	if err != nil {
		return bson.E{}, false
	}
	return bson.E{Key: CriterionYear, Value: n}, true
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := s.Repository.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			return ErrAnnualProgramNotFound
		}
		return err
	}
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*MongoStore)(nil)
)
