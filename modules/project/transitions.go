package project

import (
	"context"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/statemachine"
)

type (
	Machine    = statemachine.Machine[*Project, Status]
	transition = statemachine.Transition[*Project, Status]
)

// NewMachine builds the project status table. Every transition stamps the
// change into the project history using now.
func NewMachine(now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	run := changeStatus(now)
	hasInterventions := []statemachine.GuardFunc[*Project]{requireInterventions}

	return statemachine.MustNew(statemachine.WithTransitions(
		transition{From: []Status{StatusWished}, To: StatusPlanned, Run: run},
		transition{From: []Status{StatusPlanned, StatusPostponed}, To: StatusReplanned, Run: run},
		transition{From: []Status{StatusPlanned, StatusReplanned}, To: StatusProgrammed, Run: run, Guards: hasInterventions},
		transition{From: []Status{StatusPlanned, StatusReplanned, StatusProgrammed}, To: StatusPostponed, Run: run},
		transition{From: []Status{StatusProgrammed}, To: StatusReplanned, Run: run},
		transition{From: []Status{StatusProgrammed}, To: StatusPreliminaryOrdered, Run: run, Guards: hasInterventions},
		transition{From: []Status{StatusPreliminaryOrdered}, To: StatusFinalOrdered, Run: run},
		transition{From: []Status{StatusPreliminaryOrdered}, To: StatusProgrammed, Run: run},
		transition{
			From: []Status{StatusWished, StatusPlanned, StatusReplanned, StatusPostponed, StatusProgrammed},
			To:   StatusCanceled,
			Run:  run,
		},
	))
}

func changeStatus(now func() time.Time) statemachine.RunFunc[*Project, Status] {
	return func(_ context.Context, p *Project, target Status, _ statemachine.Options) result.Result[*Project] {
		at := now().UTC()
		next := p.Clone()
		next.History = append(next.History, StatusChange{From: p.status, To: target, At: at})
		next.status = target
		next.UpdatedAt = at
		return result.Ok(next)
	}
}

func requireInterventions(_ context.Context, p *Project) guard.Outcome {
	return guard.When(len(p.Interventions) > 0,
		guard.BusinessRule("interventions", "a project needs at least one intervention to be programmed or ordered"))
}
