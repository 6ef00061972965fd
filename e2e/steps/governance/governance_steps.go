package governance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(ctx context.Context, actor, method, path string, body any) error
	Identity(actor string) string
	Topic(name string) string
	TopicPath(name string) string
	LastStatus() int
	Field(name string) (any, bool)
}

var choices = map[string]int{"EMPTY": 0, "YES": 1, "NO": 2, "ABSTENTION": 3}

// RegisterSteps registers registry, topic and voting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &governanceSteps{tc: tc}

	// Setup steps fail the scenario when the gateway rejects them
	ctx.Step(`^"([^"]*)" lives in residence (\d+)$`, steps.livesIn)
	ctx.Step(`^"([^"]*)" is a counselor$`, steps.isCounselor)
	ctx.Step(`^a topic "([^"]*)" open for voting$`, steps.topicOpenForVoting)

	// Action steps record the response for later assertions
	ctx.Step(`^"([^"]*)" adds "([^"]*)" to residence (\d+)$`, steps.addResident)
	ctx.Step(`^"([^"]*)" removes resident "([^"]*)"$`, steps.removeResident)
	ctx.Step(`^"([^"]*)" makes "([^"]*)" a counselor$`, steps.makeCounselor)
	ctx.Step(`^"([^"]*)" hands the manager role to "([^"]*)"$`, steps.setManager)
	ctx.Step(`^"([^"]*)" proposes topic "([^"]*)"$`, steps.addTopic)
	ctx.Step(`^"([^"]*)" removes topic "([^"]*)"$`, steps.removeTopic)
	ctx.Step(`^"([^"]*)" opens voting on "([^"]*)"$`, steps.openVoting)
	ctx.Step(`^"([^"]*)" closes voting on "([^"]*)"$`, steps.closeVoting)
	ctx.Step(`^"([^"]*)" votes "(EMPTY|YES|NO|ABSTENTION)" on "([^"]*)"$`, steps.vote)

	// Query assertions
	ctx.Step(`^"([^"]*)" should be a resident of (\d+)$`, steps.shouldBeResidentOf)
	ctx.Step(`^"([^"]*)" should not be a resident$`, steps.shouldNotBeResident)
	ctx.Step(`^topic "([^"]*)" should be "(IDLE|VOTING|APPROVED|DENIED)"$`, steps.topicShouldBe)
	ctx.Step(`^topic "([^"]*)" should have (\d+) votes?$`, steps.topicShouldHaveVotes)
}

type governanceSteps struct {
	tc TestContext
}

func (s *governanceSteps) expect(status int) error {
	if got := s.tc.LastStatus(); got != status {
		desc, _ := s.tc.Field("error_description")
		return fmt.Errorf("expected status %d, got %d (%v)", status, got, desc)
	}
	return nil
}

func (s *governanceSteps) livesIn(ctx context.Context, actor string, residence int) error {
	if err := s.addResident(ctx, "the manager", actor, residence); err != nil {
		return err
	}
	return s.expect(http.StatusCreated)
}

func (s *governanceSteps) isCounselor(ctx context.Context, actor string) error {
	if err := s.makeCounselor(ctx, "the manager", actor); err != nil {
		return err
	}
	return s.expect(http.StatusOK)
}

func (s *governanceSteps) topicOpenForVoting(ctx context.Context, name string) error {
	if err := s.addTopic(ctx, "the manager", name); err != nil {
		return err
	}
	if err := s.expect(http.StatusCreated); err != nil {
		return err
	}
	if err := s.openVoting(ctx, "the manager", name); err != nil {
		return err
	}
	return s.expect(http.StatusOK)
}

func (s *governanceSteps) addResident(ctx context.Context, actor, who string, residence int) error {
	return s.tc.Do(ctx, actor, http.MethodPost, "/residents", map[string]any{
		"identity":  s.tc.Identity(who),
		"residence": residence,
	})
}

func (s *governanceSteps) removeResident(ctx context.Context, actor, who string) error {
	return s.tc.Do(ctx, actor, http.MethodDelete, "/residents/"+s.tc.Identity(who), nil)
}

func (s *governanceSteps) makeCounselor(ctx context.Context, actor, who string) error {
	return s.tc.Do(ctx, actor, http.MethodPut, "/counselors/"+s.tc.Identity(who), map[string]any{"enabled": true})
}

func (s *governanceSteps) setManager(ctx context.Context, actor, who string) error {
	return s.tc.Do(ctx, actor, http.MethodPut, "/manager", map[string]any{"identity": s.tc.Identity(who)})
}

func (s *governanceSteps) addTopic(ctx context.Context, actor, name string) error {
	return s.tc.Do(ctx, actor, http.MethodPost, "/topics", map[string]any{
		"name":        s.tc.Topic(name),
		"description": "e2e topic " + name,
	})
}

func (s *governanceSteps) removeTopic(ctx context.Context, actor, name string) error {
	return s.tc.Do(ctx, actor, http.MethodDelete, s.tc.TopicPath(name), nil)
}

func (s *governanceSteps) openVoting(ctx context.Context, actor, name string) error {
	return s.tc.Do(ctx, actor, http.MethodPost, s.tc.TopicPath(name)+"/open", nil)
}

func (s *governanceSteps) closeVoting(ctx context.Context, actor, name string) error {
	return s.tc.Do(ctx, actor, http.MethodPost, s.tc.TopicPath(name)+"/close", nil)
}

func (s *governanceSteps) vote(ctx context.Context, actor, choice, name string) error {
	return s.tc.Do(ctx, actor, http.MethodPost, s.tc.TopicPath(name)+"/votes", map[string]any{"choice": choices[choice]})
}

func (s *governanceSteps) shouldBeResidentOf(ctx context.Context, who string, residence int) error {
	if err := s.tc.Do(ctx, "", http.MethodGet, "/residents/"+s.tc.Identity(who), nil); err != nil {
		return err
	}
	got, _ := s.tc.Field("residence")
	if got != float64(residence) {
		return fmt.Errorf("expected %s in residence %d, got %v", who, residence, got)
	}
	return nil
}

func (s *governanceSteps) shouldNotBeResident(ctx context.Context, who string) error {
	if err := s.tc.Do(ctx, "", http.MethodGet, "/residents/"+s.tc.Identity(who), nil); err != nil {
		return err
	}
	if got, _ := s.tc.Field("resident"); got != false {
		return fmt.Errorf("expected %s not to be a resident", who)
	}
	return nil
}

func (s *governanceSteps) topicShouldBe(ctx context.Context, name, status string) error {
	if err := s.tc.Do(ctx, "", http.MethodGet, s.tc.TopicPath(name), nil); err != nil {
		return err
	}
	if got, _ := s.tc.Field("status"); got != status {
		return fmt.Errorf("expected topic %q to be %s, got %v", name, status, got)
	}
	return nil
}

func (s *governanceSteps) topicShouldHaveVotes(ctx context.Context, name string, votes int) error {
	if err := s.tc.Do(ctx, "", http.MethodGet, s.tc.TopicPath(name)+"/votes", nil); err != nil {
		return err
	}
	got, _ := s.tc.Field("votes")
	if got != float64(votes) {
		return fmt.Errorf("expected %s votes on %q, got %v", strconv.Itoa(votes), name, got)
	}
	return nil
}
