package model

import (
	"github.com/smauto-dev/engine/domain/condition"
	"github.com/smauto-dev/engine/infrastructure/errors"
)

// Validate runs the structural checks the engine refuses to start without:
// unique names, resolvable broker/entity/attribute references, and
// resolvable after/starts/stops automation references. The full
// language-level validator (grammar constraints, type inference) is the
// out-of-scope external collaborator; this is the subset the engine itself
// depends on being true.
func Validate(m *Model) error {
	brokerNames := make(map[string]bool, len(m.Brokers))
	for _, b := range m.Brokers {
		if brokerNames[b.Name] {
			return errors.DuplicateName("broker", b.Name)
		}
		brokerNames[b.Name] = true
	}

	entities := make(map[string]bool, len(m.Entities))
	for _, e := range m.Entities {
		if entities[e.Name] {
			return errors.DuplicateName("entity", e.Name)
		}
		entities[e.Name] = true
		if e.BrokerName != "" && !brokerNames[e.BrokerName] {
			return errors.UnknownReference("entity "+e.Name, "broker", e.BrokerName)
		}
		attrNames := make(map[string]bool, len(e.Attributes))
		for _, a := range e.Attributes {
			if attrNames[a.Name] {
				return errors.DuplicateName("attribute", e.Name+"."+a.Name)
			}
			attrNames[a.Name] = true
		}
	}

	automations := make(map[string]bool, len(m.Automations))
	for _, a := range m.Automations {
		if automations[a.Name] {
			return errors.DuplicateName("automation", a.Name)
		}
		automations[a.Name] = true
	}

	for _, a := range m.Automations {
		for _, ref := range a.After {
			if !automations[ref] {
				return errors.UnknownReference("automation "+a.Name+".after", "automation", ref)
			}
		}
		for _, ref := range a.Starts {
			if !automations[ref] {
				return errors.UnknownReference("automation "+a.Name+".starts", "automation", ref)
			}
		}
		for _, ref := range a.Stops {
			if !automations[ref] {
				return errors.UnknownReference("automation "+a.Name+".stops", "automation", ref)
			}
		}
		for _, act := range a.Actions {
			if err := checkEntityAttr(entities, m, act.Entity, act.Attribute, "automation "+a.Name+" action"); err != nil {
				return err
			}
		}
		if err := validateCondition(entities, m, a.Name, a.Condition); err != nil {
			return err
		}
	}

	return nil
}

func validateCondition(entities map[string]bool, m *Model, automationName string, n *condition.Node) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case condition.KindGroup:
		if err := validateCondition(entities, m, automationName, n.Left); err != nil {
			return err
		}
		return validateCondition(entities, m, automationName, n.Right)
	case condition.KindInRange:
		return checkOperand(entities, m, automationName, n.RangeAttr)
	default:
		if err := checkOperand(entities, m, automationName, n.Operand1); err != nil {
			return err
		}
		return checkOperand(entities, m, automationName, n.Operand2)
	}
}

func checkOperand(entities map[string]bool, m *Model, automationName string, op condition.Operand) error {
	if op.OpKind == condition.OperandLiteral {
		return nil
	}
	return checkEntityAttr(entities, m, op.Entity, op.Attribute, "automation "+automationName+" condition")
}

func checkEntityAttr(entities map[string]bool, m *Model, entityName, attrName, from string) error {
	if !entities[entityName] {
		return errors.UnknownReference(from, "entity", entityName)
	}
	e := m.EntityByName(entityName)
	for _, a := range e.Attributes {
		if a.Name == attrName {
			return nil
		}
	}
	return errors.UnknownReference(from, "attribute", entityName+"."+attrName)
}
