package session

import (
	"encoding/json"
	"fmt"
	"time"

	"cafe-preorder-bot/internal/domain/menu"
)

// Step is the conversation step of a chat. Each variant carries only the data valid for it.
type Step interface {
	Kind() string
	isStep()
}

// Customer flow.
type (
	Idle             struct{}
	ChoosingCategory struct{}
	ChoosingItem     struct {
		Category string `json:"category"`
	}
	ChoosingTime struct{}
	Confirming   struct {
		PickupAt time.Time `json:"pickup_at"`
	}
)

// Admin flows.
type (
	AddItemCategory struct{}
	AddItemName     struct {
		Category string `json:"category"`
	}
	AddItemPrice struct {
		Category string `json:"category"`
		Name     string `json:"name"`
	}
	AddItemPhoto struct {
		Draft menu.Item `json:"draft"`
	}
	EditItemValue struct {
		ItemID int64      `json:"item_id"`
		Field  menu.Field `json:"field"`
	}
	AttachPhoto struct {
		ItemID int64 `json:"item_id"`
	}
	RenameCategory struct {
		Category string `json:"category"`
	}
)

func (Idle) Kind() string             { return "idle" }
func (ChoosingCategory) Kind() string { return "choosing_category" }
func (ChoosingItem) Kind() string     { return "choosing_item" }
func (ChoosingTime) Kind() string     { return "choosing_time" }
func (Confirming) Kind() string       { return "confirming" }
func (AddItemCategory) Kind() string  { return "add_item_category" }
func (AddItemName) Kind() string      { return "add_item_name" }
func (AddItemPrice) Kind() string     { return "add_item_price" }
func (AddItemPhoto) Kind() string     { return "add_item_photo" }
func (EditItemValue) Kind() string    { return "edit_item_value" }
func (AttachPhoto) Kind() string      { return "attach_photo" }
func (RenameCategory) Kind() string   { return "rename_category" }

func (Idle) isStep()             {}
func (ChoosingCategory) isStep() {}
func (ChoosingItem) isStep()     {}
func (ChoosingTime) isStep()     {}
func (Confirming) isStep()       {}
func (AddItemCategory) isStep()  {}
func (AddItemName) isStep()      {}
func (AddItemPrice) isStep()     {}
func (AddItemPhoto) isStep()     {}
func (EditItemValue) isStep()    {}
func (AttachPhoto) isStep()      {}
func (RenameCategory) isStep()   {}

func newStep(kind string) (Step, error) {
	switch kind {
	case "", "idle":
		return Idle{}, nil
	case "choosing_category":
		return ChoosingCategory{}, nil
	case "choosing_item":
		return ChoosingItem{}, nil
	case "choosing_time":
		return ChoosingTime{}, nil
	case "confirming":
		return Confirming{}, nil
	case "add_item_category":
		return AddItemCategory{}, nil
	case "add_item_name":
		return AddItemName{}, nil
	case "add_item_price":
		return AddItemPrice{}, nil
	case "add_item_photo":
		return AddItemPhoto{}, nil
	case "edit_item_value":
		return EditItemValue{}, nil
	case "attach_photo":
		return AttachPhoto{}, nil
	case "rename_category":
		return RenameCategory{}, nil
	}
	return nil, fmt.Errorf("unknown session step %q", kind)
}

type stepEnvelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

func encodeStep(s Step) (stepEnvelope, error) {
	if s == nil {
		s = Idle{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return stepEnvelope{}, err
	}
	return stepEnvelope{Kind: s.Kind(), Data: data}, nil
}

func decodeStep(env stepEnvelope) (Step, error) {
	zero, err := newStep(env.Kind)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return zero, nil
	}
	switch s := zero.(type) {
	case ChoosingItem:
		err = json.Unmarshal(env.Data, &s)
		return s, err
	case Confirming:
		err = json.Unmarshal(env.Data, &s)
		return s, err
	case AddItemName:
		err = json.Unmarshal(env.Data, &s)
		return s, err
	case AddItemPrice:
		err = json.Unmarshal(env.Data, &s)
		return s, err
	case AddItemPhoto:
		err = json.Unmarshal(env.Data, &s)
		return s, err
	case EditItemValue:
		err = json.Unmarshal(env.Data, &s)
		return s, err
	case AttachPhoto:
		err = json.Unmarshal(env.Data, &s)
		return s, err
	case RenameCategory:
		err = json.Unmarshal(env.Data, &s)
		return s, err
	}
	return zero, nil
}
