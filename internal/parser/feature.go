package parser

// Object is one decoded chart feature.
type Object struct {
	// ID is the feature id from the feature identification record
	ID uint32
	// Code is the S-57 object class code (e.g. 42 = DEPARE)
	Code uint16
	// Attributes are keyed by S-57 attribute code
	Attributes map[uint16]Attribute
	// Geometry is the assembled spatial representation, never nil after decode
	Geometry Geometry
	// BBox is in the planar units of the vertex buffer
	BBox BBox
}

// ClassName returns the object class acronym, e.g. "DEPARE".
func (o *Object) ClassName() string {
	return ObjectClassToString(o.Code)
}

// Attribute returns the attribute with the given code.
func (o *Object) Attribute(code uint16) (Attribute, bool) {
	a, ok := o.Attributes[code]
	return a, ok
}

// AttributeByName returns the attribute with the given acronym, e.g. "OBJNAM".
func (o *Object) AttributeByName(acronym string) (Attribute, bool) {
	for code, a := range o.Attributes {
		if AttributeCodeToString(code) == acronym {
			return a, true
		}
	}
	return Attribute{}, false
}

// ObjectBuilder constructs an Object. Geometry can be set once.
type ObjectBuilder struct {
	obj *Object
}

// NewObjectBuilder starts an object with the given feature id and class code.
func NewObjectBuilder(id uint32, code uint16) *ObjectBuilder {
	return &ObjectBuilder{obj: &Object{
		ID:         id,
		Code:       code,
		Attributes: make(map[uint16]Attribute),
	}}
}

// AddAttribute sets attribute code, replacing any earlier value.
func (b *ObjectBuilder) AddAttribute(code uint16, a Attribute) {
	b.obj.Attributes[code] = a
}

// SetGeometry attaches g and its bounding box. It returns
// ErrGeometryAlreadySet, leaving the object unchanged, if a geometry was
// set before.
func (b *ObjectBuilder) SetGeometry(g Geometry, bbox BBox) error {
	if b.obj.Geometry != nil {
		return ErrGeometryAlreadySet
	}
	b.obj.Geometry = g
	b.obj.BBox = bbox
	return nil
}

// HasGeometry reports whether SetGeometry succeeded before.
func (b *ObjectBuilder) HasGeometry() bool {
	return b.obj.Geometry != nil
}

// Object returns the object being built.
func (b *ObjectBuilder) Object() *Object {
	return b.obj
}
