package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smauto-dev/engine/domain/automation"
	"github.com/smauto-dev/engine/domain/broker"
	"github.com/smauto-dev/engine/domain/condition"
	"github.com/smauto-dev/engine/domain/entity"
)

// document is the on-disk YAML shape: a direct serialization of the
// already-parsed model AST the (out-of-scope) grammar/parser would
// otherwise hand the engine in memory.
type document struct {
	Brokers     []brokerDoc     `yaml:"brokers"`
	Entities    []entityDoc     `yaml:"entities"`
	Automations []automationDoc `yaml:"automations"`
}

type authDoc struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type brokerDoc struct {
	Name          string  `yaml:"name"`
	Kind          string  `yaml:"kind"`
	Host          string  `yaml:"host"`
	Port          int     `yaml:"port"`
	Auth          authDoc `yaml:"auth"`
	SSL           bool    `yaml:"ssl"`
	VHost         string  `yaml:"vhost"`
	TopicExchange string  `yaml:"topicExchange"`
	RPCExchange   string  `yaml:"rpcExchange"`
	DB            int     `yaml:"db"`
}

type attributeDoc struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type entityDoc struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Broker     string         `yaml:"broker"`
	Topic      string         `yaml:"topic"`
	Freq       float64        `yaml:"freq"`
	Attributes []attributeDoc `yaml:"attributes"`
}

type actionDoc struct {
	Entity    string `yaml:"entity"`
	Attribute string `yaml:"attribute"`
	Value     any    `yaml:"value"`
}

type automationDoc struct {
	Name       string       `yaml:"name"`
	Condition  *conditionDoc `yaml:"condition"`
	Actions    []actionDoc  `yaml:"actions"`
	Freq       float64      `yaml:"freq"`
	Enabled    *bool        `yaml:"enabled"`
	Continuous *bool        `yaml:"continuous"`
	CheckOnce  bool         `yaml:"checkOnce"`
	After      []string     `yaml:"after"`
	Starts     []string     `yaml:"starts"`
	Stops      []string     `yaml:"stops"`
}

// conditionDoc mirrors condition.Node's variants: either a group composing
// two child conditions, a primitive comparison, or an inRange form.
type conditionDoc struct {
	Kind string `yaml:"kind"` // group | numeric | bool | string | list | dict | time | inRange

	// group
	Op    string        `yaml:"op"`
	Left  *conditionDoc `yaml:"left"`
	Right *conditionDoc `yaml:"right"`

	// primitive
	Operand1 *operandDoc `yaml:"operand1"`
	Compare  string      `yaml:"compare"`
	Operand2 *operandDoc `yaml:"operand2"`

	// inRange
	RangeAttr *operandDoc `yaml:"rangeAttr"`
	Min       float64     `yaml:"min"`
	Max       float64     `yaml:"max"`
}

// operandDoc mirrors condition.Operand's variants.
type operandDoc struct {
	Kind      string `yaml:"kind"` // literal | attr | aggregate
	Literal   any    `yaml:"value"`
	Entity    string `yaml:"entity"`
	Attribute string `yaml:"attribute"`
	Agg       string `yaml:"agg"`
	Window    int    `yaml:"window"`
}

// Load reads and parses a YAML model document from path, then runs
// Validate. Failed validation returns a Configuration-kind
// *errors.EngineError; a read, YAML decode, or unknown-kind failure returns
// a plain wrapped error.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML model document from data and validates it.
func Parse(data []byte) (*Model, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}

	m := &Model{}
	for _, bd := range doc.Brokers {
		b := &broker.Broker{
			Name: bd.Name,
			Kind: broker.Kind(bd.Kind),
			Host: bd.Host,
			Port: bd.Port,
			Auth: broker.Auth{Username: bd.Auth.Username, Password: bd.Auth.Password},
			SSL:  bd.SSL,

			VHost:         bd.VHost,
			TopicExchange: bd.TopicExchange,
			RPCExchange:   bd.RPCExchange,
			DB:            bd.DB,
		}
		if err := b.Normalize(); err != nil {
			return nil, err
		}
		m.Brokers = append(m.Brokers, b)
	}

	for _, ed := range doc.Entities {
		e := &entity.Entity{
			Name:       ed.Name,
			Type:       entity.Type(ed.Type),
			Freq:       ed.Freq,
			Topic:      ed.Topic,
			BrokerName: ed.Broker,
		}
		if e.Freq <= 0 {
			e.Freq = entity.DefaultFreqHz
		}
		for _, ad := range ed.Attributes {
			kind, err := parseKind(ad.Kind)
			if err != nil {
				return nil, err
			}
			e.Attributes = append(e.Attributes, entity.NewAttribute(ad.Name, kind, nil))
		}
		m.Entities = append(m.Entities, e)
	}

	for _, autoDoc := range doc.Automations {
		cond, err := toConditionNode(autoDoc.Condition)
		if err != nil {
			return nil, err
		}
		var actions []automation.Action
		for _, ad := range autoDoc.Actions {
			actions = append(actions, automation.Action{Entity: ad.Entity, Attribute: ad.Attribute, Value: ad.Value})
		}
		a := automation.NewAutomation(autoDoc.Name, cond, actions)
		if autoDoc.Freq > 0 {
			a.FreqHz = autoDoc.Freq
		}
		if autoDoc.Continuous != nil {
			a.Continuous = *autoDoc.Continuous
		}
		a.CheckOnce = autoDoc.CheckOnce
		a.After = autoDoc.After
		a.Starts = autoDoc.Starts
		a.Stops = autoDoc.Stops
		if autoDoc.Enabled != nil && !*autoDoc.Enabled {
			a.Disable()
		}
		m.Automations = append(m.Automations, a)
	}

	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func parseKind(s string) (entity.Kind, error) {
	switch s {
	case "int":
		return entity.KindInt, nil
	case "float":
		return entity.KindFloat, nil
	case "string":
		return entity.KindString, nil
	case "bool":
		return entity.KindBool, nil
	case "time":
		return entity.KindTime, nil
	case "list":
		return entity.KindList, nil
	case "dict":
		return entity.KindDict, nil
	default:
		return 0, fmt.Errorf("unknown attribute kind %q", s)
	}
}

func toConditionNode(d *conditionDoc) (*condition.Node, error) {
	if d == nil {
		return nil, nil
	}
	switch d.Kind {
	case "group":
		left, err := toConditionNode(d.Left)
		if err != nil {
			return nil, err
		}
		right, err := toConditionNode(d.Right)
		if err != nil {
			return nil, err
		}
		return condition.Group(left, condition.GroupOp(d.Op), right), nil
	case "inRange":
		op, err := toOperand(d.RangeAttr)
		if err != nil {
			return nil, err
		}
		return condition.InRange(op, d.Min, d.Max), nil
	default:
		kind, err := conditionKindFromString(d.Kind)
		if err != nil {
			return nil, err
		}
		op1, err := toOperand(d.Operand1)
		if err != nil {
			return nil, err
		}
		op2, err := toOperand(d.Operand2)
		if err != nil {
			return nil, err
		}
		return condition.Primitive(kind, op1, condition.CompareOp(d.Compare), op2), nil
	}
}

func conditionKindFromString(s string) (condition.Kind, error) {
	switch s {
	case "numeric":
		return condition.KindNumeric, nil
	case "bool":
		return condition.KindBool, nil
	case "string":
		return condition.KindString, nil
	case "list":
		return condition.KindList, nil
	case "dict":
		return condition.KindDict, nil
	case "time":
		return condition.KindTime, nil
	default:
		return 0, fmt.Errorf("unknown condition kind %q", s)
	}
}

func toOperand(d *operandDoc) (condition.Operand, error) {
	if d == nil {
		return condition.Operand{}, fmt.Errorf("missing operand")
	}
	switch d.Kind {
	case "literal":
		return condition.Lit(d.Literal), nil
	case "attr":
		return condition.Attr(d.Entity, d.Attribute), nil
	case "aggregate":
		return condition.Aggregate(condition.AggregateFunc(d.Agg), d.Entity, d.Attribute, d.Window), nil
	default:
		return condition.Operand{}, fmt.Errorf("unknown operand kind %q", d.Kind)
	}
}
