package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"tdtask/internal/config"
	"tdtask/internal/credential"
	"tdtask/internal/exitcode"
	"tdtask/internal/logging"
	"tdtask/internal/tasks"
	"tdtask/internal/transport"
)

const dueDateLayout = "2006-01-02"

func init() {
	Register(&AddCmd{})
}

// addOptions holds the add command flags.
type addOptions struct {
	description  optString
	project      optString
	section      optString
	parent       optString
	order        optInt32
	labels       labelList
	noLabels     bool
	priority     optUint8
	due          optString
	dueLang      optString
	dueDate      optString
	dueDatetime  optString
	assignee     optString
	duration     optUint32
	durationUnit optString
}

// AddCmd implements the add command.
type AddCmd struct {
	opts addOptions
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "tdtask add [task flags] <content...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.opts = addOptions{}
	o := &c.opts
	fs.Var(&o.description, "description", "")
	fs.Var(&o.description, "d", "")
	fs.Var(&o.project, "project", "")
	fs.Var(&o.project, "p", "")
	fs.Var(&o.section, "section", "")
	fs.Var(&o.parent, "parent", "")
	fs.Var(&o.order, "order", "")
	fs.Var(&o.labels, "label", "")
	fs.Var(&o.labels, "l", "")
	fs.BoolVar(&o.noLabels, "no-labels", false, "")
	fs.Var(&o.priority, "priority", "")
	fs.Var(&o.due, "due", "")
	fs.Var(&o.dueLang, "due-lang", "")
	fs.Var(&o.dueDate, "due-date", "")
	fs.Var(&o.dueDatetime, "due-datetime", "")
	fs.Var(&o.assignee, "assignee", "")
	fs.Var(&o.duration, "duration", "")
	fs.Var(&o.durationUnit, "duration-unit", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, tr transport.Transport, user *credential.User, args []string, out, errOut io.Writer) int {
	logger := logging.New(errOut, cfg.Debug)

	content := strings.Join(args, " ")
	if strings.TrimSpace(content) == "" {
		fmt.Fprintln(errOut, "error: content required")
		return exitcode.UserError
	}

	defaults, err := cfg.LoadDefaults()
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %v\n", err)
		return exitcode.AuthError
	}

	task, err := buildTask(content, &c.opts, defaults)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	logger.Debug("task payload built", zap.ByteString("body", task.Body()))

	if err := tr.CreateTask(ctx, user, task); err != nil {
		if errors.Is(err, transport.ErrNoCredential) {
			fmt.Fprintln(errOut, "error: not logged in (run: tdtask login)")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// buildTask assembles a payload from flags, falling back to config defaults
// for flags that were not given.
func buildTask(content string, o *addOptions, d config.Defaults) (*tasks.NewTask, error) {
	task := tasks.New(content)
	task.Description = o.description.v
	task.ParentID = o.parent.v
	task.Order = o.order.v
	task.AssigneeID = o.assignee.v
	task.Duration = o.duration.v

	task.ProjectID = orDefault(o.project.v, d.ProjectID)
	task.SectionID = orDefault(o.section.v, d.SectionID)
	task.DurationUnit = orDefault(o.durationUnit.v, d.DurationUnit)

	task.Priority = o.priority.v
	if task.Priority == nil && d.Priority != 0 {
		task.Priority = tasks.Ptr(d.Priority)
	}

	switch {
	case o.noLabels && len(o.labels) > 0:
		return nil, errors.New("cannot use both --label and --no-labels")
	case o.noLabels:
		task.Labels = []string{}
	case len(o.labels) > 0:
		task.Labels = []string(o.labels)
	case len(d.Labels) > 0:
		task.Labels = d.Labels
	}

	due, err := buildDue(o, d)
	if err != nil {
		return nil, err
	}
	task.Due = due
	return task, nil
}

// buildDue picks the single due variant given on the command line.
func buildDue(o *addOptions, d config.Defaults) (tasks.Due, error) {
	given := 0
	for _, v := range []*string{o.due.v, o.dueDate.v, o.dueDatetime.v} {
		if v != nil {
			given++
		}
	}
	if given > 1 {
		return nil, errors.New("only one of --due, --due-date, --due-datetime may be given")
	}
	if o.dueLang.v != nil && o.due.v == nil {
		return nil, errors.New("--due-lang requires --due")
	}

	switch {
	case o.due.v != nil:
		lang := orDefault(o.dueLang.v, d.DueLang)
		if lang != nil {
			tag, err := language.Parse(*lang)
			if err != nil {
				return nil, fmt.Errorf("invalid due language: %s", *lang)
			}
			lang = tasks.Ptr(tag.String())
		}
		return tasks.DueFromString(*o.due.v, lang), nil

	case o.dueDate.v != nil:
		if _, err := time.Parse(dueDateLayout, *o.dueDate.v); err != nil {
			return nil, fmt.Errorf("invalid due date: %s (want YYYY-MM-DD)", *o.dueDate.v)
		}
		return tasks.DueFromDate(*o.dueDate.v), nil

	case o.dueDatetime.v != nil:
		t, err := time.Parse(time.RFC3339, *o.dueDatetime.v)
		if err != nil {
			return nil, fmt.Errorf("invalid due datetime: %s (want RFC3339)", *o.dueDatetime.v)
		}
		return tasks.DueFromDatetime(t.UTC().Format(time.RFC3339)), nil
	}
	return nil, nil
}

// orDefault returns given if the flag was set, otherwise def when it is non-empty.
func orDefault(given *string, def string) *string {
	if given != nil {
		return given
	}
	if def == "" {
		return nil
	}
	return tasks.Ptr(def)
}
