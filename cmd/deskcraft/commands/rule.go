package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "List, create or delete rules",
}

var ruleListCmd = &cobra.Command{
	Use:  "list",
	RunE: runRuleList,
}

var ruleDeleteCmd = &cobra.Command{
	Use:  "delete [rule-id]",
	Args: cobra.ExactArgs(1),
	RunE: runRuleDelete,
}

var (
	ruleField       string
	ruleOperator    string
	ruleValue       string
	ruleActionType  string
	ruleDestination string
	rulePriority    int
)

var ruleAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a rule with a single condition and a single action",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuleAdd,
}

func init() {
	rootCmd.AddCommand(ruleCmd)
	ruleCmd.AddCommand(ruleListCmd, ruleDeleteCmd, ruleAddCmd)

	ruleAddCmd.Flags().StringVar(&ruleField, "field", string(types.FieldExtension), "Condition field")
	ruleAddCmd.Flags().StringVar(&ruleOperator, "operator", string(types.OpEquals), "Condition operator")
	ruleAddCmd.Flags().StringVar(&ruleValue, "value", "", "Condition value")
	ruleAddCmd.Flags().StringVar(&ruleActionType, "action", string(types.ActionMoveToFolder), "Action type")
	ruleAddCmd.Flags().StringVar(&ruleDestination, "destination", "", "Action destination (supports {year}/{month}/{day}/{extension}/{original} templates)")
	ruleAddCmd.Flags().IntVar(&rulePriority, "priority", 0, "Rule priority (higher wins ties)")
}

func runRuleList(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	rules, err := sess.store.ListRules(context.Background())
	if err != nil {
		return err
	}
	for _, r := range rules {
		state := "enabled"
		if !r.Enabled {
			state = "disabled"
		}
		fmt.Printf("%s\t%s\t%s\tpriority=%d\tconditions=%d\tactions=%d\n", r.ID, r.Name, state, r.Priority, len(r.Conditions), len(r.Actions))
	}
	return nil
}

func runRuleDelete(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()
	return sess.store.DeleteRule(context.Background(), args[0])
}

func runRuleAdd(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	now := time.Now().Format(types.TimestampLayout)
	ruleID := uuid.NewString()

	rule := types.Rule{
		ID:        ruleID,
		Name:      args[0],
		Enabled:   true,
		Priority:  rulePriority,
		CreatedAt: now,
		UpdatedAt: now,
		Conditions: []types.Condition{{
			ID:       uuid.NewString(),
			RuleID:   ruleID,
			Field:    types.ConditionField(ruleField),
			Operator: types.Operator(ruleOperator),
			Value:    ruleValue,
		}},
		Actions: []types.Action{{
			ID:          uuid.NewString(),
			RuleID:      ruleID,
			ActionType:  types.ActionType(ruleActionType),
			Destination: ruleDestination,
		}},
	}

	if err := sess.store.SaveRule(context.Background(), rule); err != nil {
		return err
	}
	fmt.Println(ruleID)
	return nil
}
