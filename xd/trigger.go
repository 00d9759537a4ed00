package xd

// Trigger inspects every resolved object. It may return the object
// unchanged, a replacement, or nil to delete the object and its subtree.
type Trigger interface {
	OnCreateObject(obj *Object) *Object
}

// TriggerFunc adapts a function to the Trigger interface.
type TriggerFunc func(obj *Object) *Object

// OnCreateObject calls f(obj).
func (f TriggerFunc) OnCreateObject(obj *Object) *Object {
	return f(obj)
}

// SkipInvisible deletes hidden objects.
var SkipInvisible = TriggerFunc(func(obj *Object) *Object {
	if !obj.IsVisible() {
		return nil
	}
	return obj
})

func runTriggers(triggers []Trigger, obj *Object) *Object {
	for _, t := range triggers {
		obj = t.OnCreateObject(obj)
		if obj == nil {
			return nil
		}
	}
	return obj
}
