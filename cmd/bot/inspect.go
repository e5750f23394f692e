package main

import (
	"fmt"

	"github.com/mama165/sdk-go/database"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// OutcomeMapper renders a ledger entry for the badger inspector.
func OutcomeMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	var p structpb.Struct
	if err := proto.Unmarshal(val, &p); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	fields := p.GetFields()
	row.Type = fields["reason"].GetStringValue()
	row.Detail = fmt.Sprintf("relayed=%d started=%s ended=%s",
		int(fields["relayed"].GetNumberValue()),
		fields["started_at"].GetStringValue(),
		fields["ended_at"].GetStringValue())
	return row
}
