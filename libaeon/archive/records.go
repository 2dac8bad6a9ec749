package archive

import (
	"github.com/gogo/protobuf/proto"
)

// ReportRecord is the archived form of one analysis run.
type ReportRecord struct {
	RunId         string             `protobuf:"bytes,1,opt,name=run_id,json=runId,proto3" json:"run_id,omitempty"`
	Model         string             `protobuf:"bytes,2,opt,name=model,proto3" json:"model,omitempty"`
	CreatedUnix   int64              `protobuf:"varint,3,opt,name=created_unix,json=createdUnix,proto3" json:"created_unix,omitempty"`
	NumVars       int64              `protobuf:"varint,4,opt,name=num_vars,json=numVars,proto3" json:"num_vars,omitempty"`
	NumColors     float64            `protobuf:"fixed64,5,opt,name=num_colors,json=numColors,proto3" json:"num_colors,omitempty"`
	ReducedStates float64            `protobuf:"fixed64,6,opt,name=reduced_states,json=reducedStates,proto3" json:"reduced_states,omitempty"`
	Classes       []*ClassRecord     `protobuf:"bytes,7,rep,name=classes,proto3" json:"classes,omitempty"`
	Attractors    []*AttractorRecord `protobuf:"bytes,8,rep,name=attractors,proto3" json:"attractors,omitempty"`
	Interrupted   string             `protobuf:"bytes,9,opt,name=interrupted,proto3" json:"interrupted,omitempty"`
}

func (m *ReportRecord) Reset()         { *m = ReportRecord{} }
func (m *ReportRecord) String() string { return proto.CompactTextString(m) }
func (*ReportRecord) ProtoMessage()    {}

// ClassRecord is the archived form of one behaviour class.
type ClassRecord struct {
	Code   string  `protobuf:"bytes,1,opt,name=code,proto3" json:"code,omitempty"`
	Colors float64 `protobuf:"fixed64,2,opt,name=colors,proto3" json:"colors,omitempty"`
}

func (m *ClassRecord) Reset()         { *m = ClassRecord{} }
func (m *ClassRecord) String() string { return proto.CompactTextString(m) }
func (*ClassRecord) ProtoMessage()    {}

// AttractorRecord is the archived summary of one attractor set.
type AttractorRecord struct {
	States      float64 `protobuf:"fixed64,1,opt,name=states,proto3" json:"states,omitempty"`
	Colors      float64 `protobuf:"fixed64,2,opt,name=colors,proto3" json:"colors,omitempty"`
	Stability   float64 `protobuf:"fixed64,3,opt,name=stability,proto3" json:"stability,omitempty"`
	Oscillation float64 `protobuf:"fixed64,4,opt,name=oscillation,proto3" json:"oscillation,omitempty"`
	Disorder    float64 `protobuf:"fixed64,5,opt,name=disorder,proto3" json:"disorder,omitempty"`
	Witness     string  `protobuf:"bytes,6,opt,name=witness,proto3" json:"witness,omitempty"` // one state of the attractor, e.g. "0110"
}

func (m *AttractorRecord) Reset()         { *m = AttractorRecord{} }
func (m *AttractorRecord) String() string { return proto.CompactTextString(m) }
func (*AttractorRecord) ProtoMessage()    {}
