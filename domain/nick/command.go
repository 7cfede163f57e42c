package nick

import (
	"fmt"
	"nick-lab/errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const mergeConnective = "into"

var validate = validator.New()

// MergeCommand folds Duplicate into Primary: ".nickmerge <duplicate> into <primary>".
type MergeCommand struct {
	Duplicate  Nickname `validate:"required"`
	Connective string   `validate:"required,eq=into"`
	Primary    Nickname `validate:"required"`
}

// UnmergeCommand removes Target from its group: ".nickunmerge <nick>".
type UnmergeCommand struct {
	Target Nickname `validate:"required"`
}

// ShowGroupCommand lists the group of a nick or of a numeric group id: ".shownickgroup <nick|id>".
type ShowGroupCommand struct {
	Target Nickname `validate:"required"`
}

// ParseMergeCommand reads the first three arguments of the trigger.
// The connective is compared case-insensitively.
func ParseMergeCommand(args []string) MergeCommand {
	return MergeCommand{
		Duplicate:  Nickname(arg(args, 0)),
		Connective: strings.ToLower(arg(args, 1)),
		Primary:    Nickname(arg(args, 2)),
	}
}

func ParseUnmergeCommand(args []string) UnmergeCommand {
	return UnmergeCommand{Target: Nickname(arg(args, 0))}
}

func ParseShowGroupCommand(args []string) ShowGroupCommand {
	return ShowGroupCommand{Target: Nickname(arg(args, 0))}
}

func (c MergeCommand) Validate() error {
	return validateCommand(c)
}

func (c UnmergeCommand) Validate() error {
	return validateCommand(c)
}

func (c ShowGroupCommand) Validate() error {
	return validateCommand(c)
}

func validateCommand(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}

func arg(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strings.TrimSpace(args[i])
}
