package intentions

import (
	"testing"

	"github.com/occ2swift/occ/internal/objcparse"
	"github.com/occ2swift/occ/internal/types"
)

func mustParse(t *testing.T, src string) *objcparse.File {
	t.Helper()
	f, errs := objcparse.ParseFile(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return f
}

func TestCollectFileRegistersClassWithSuperclassAndProtocols(t *testing.T) {
	f := mustParse(t, `
@interface Widget : NSObject <NSCopying>
@property (nonatomic, strong) NSString *name;
- (void)setName:(NSString *)name;
@end
`)
	g := NewGraph()
	CollectFile(g, f, "widget.h")

	cls, ok := g.Get(KindClass, "Widget")
	if !ok {
		t.Fatal("expected Widget class intention")
	}
	if cls.Superclass != "NSObject" {
		t.Fatalf("unexpected superclass: %q", cls.Superclass)
	}
	if len(cls.Protocols) != 1 || cls.Protocols[0] != "NSCopying" {
		t.Fatalf("unexpected protocols: %v", cls.Protocols)
	}

	prop, ok := g.Get(KindProperty, "name")
	if !ok || prop.ParentName != "Widget" {
		t.Fatalf("expected name property on Widget, got %+v", prop)
	}
	if prop.PropertyType.Kind != types.SwiftImplicitUnwrappedOptional {
		t.Fatalf("expected unqualified pointer outside NS_ASSUME_NONNULL to be IUO, got %v", prop.PropertyType)
	}

	m, ok := g.ResolveMethod("Widget", "setName:")
	if !ok {
		t.Fatal("expected setName: method")
	}
	if len(m.Signature.Parameters) != 1 || m.Signature.Parameters[0].Name != "name" {
		t.Fatalf("unexpected method signature: %+v", m.Signature)
	}
}

func TestCollectFileHonorsAssumeNonnullRegion(t *testing.T) {
	f := mustParse(t, `
NS_ASSUME_NONNULL_BEGIN
@interface Widget : NSObject
@property (nonatomic, strong) NSString *name;
@end
NS_ASSUME_NONNULL_END
`)
	g := NewGraph()
	CollectFile(g, f, "widget.h")

	prop, ok := g.Get(KindProperty, "name")
	if !ok {
		t.Fatal("expected name property")
	}
	if prop.PropertyType.Kind != types.SwiftNominal {
		t.Fatalf("expected non-optional String inside NS_ASSUME_NONNULL region, got %v", prop.PropertyType)
	}
}

func TestCollectFileMarksIVarVisibilityAndWeakOwnership(t *testing.T) {
	f := mustParse(t, `
@implementation Widget {
  @private
  NSInteger _count;
  @public
  __weak NSObject *_delegate;
}
@end
`)
	g := NewGraph()
	CollectFile(g, f, "widget.m")

	count, ok := g.Get(KindIVar, "_count")
	if !ok || count.Access != AccessPrivate {
		t.Fatalf("expected private _count ivar, got %+v", count)
	}
	delegate, ok := g.Get(KindIVar, "_delegate")
	if !ok || delegate.Access != AccessPublic || delegate.Own != OwnershipWeak {
		t.Fatalf("expected public weak _delegate ivar, got %+v", delegate)
	}
}

func TestCollectFileMapsNSEnumCases(t *testing.T) {
	f := mustParse(t, `
typedef NS_ENUM(NSInteger, WidgetState) {
  WidgetStateIdle = 0,
  WidgetStateRunning,
};
`)
	g := NewGraph()
	CollectFile(g, f, "widget.h")

	e, ok := g.Get(KindEnum, "WidgetState")
	if !ok {
		t.Fatal("expected WidgetState enum intention")
	}
	if len(e.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(e.Cases))
	}
	if e.Cases[0].RawValue == nil || *e.Cases[0].RawValue != 0 {
		t.Fatalf("expected explicit raw value 0, got %+v", e.Cases[0])
	}
	if e.Cases[1].RawValue != nil {
		t.Fatalf("expected implicit raw value for second case, got %+v", e.Cases[1])
	}
}

func TestCollectFileMergesCategoryAsExtension(t *testing.T) {
	f := mustParse(t, `
@interface Widget (Private)
- (void)internalReset;
@end
`)
	g := NewGraph()
	CollectFile(g, f, "widget+private.h")

	if _, ok := g.Get(KindClass, "Private"); ok {
		t.Fatal("category name should not register as its own class")
	}
	ext, ok := g.Get(KindExtension, "Private")
	if !ok || !ext.IsCategory || ext.ParentName != "Widget" {
		t.Fatalf("expected Private category extension on Widget, got %+v", ext)
	}
	if _, ok := g.ResolveMethod("Widget", "internalReset"); ok {
		t.Fatal("category methods are not registered under the class name in this graph model")
	}
}

func TestCollectFileMarksStaticGlobalAsInternal(t *testing.T) {
	f := mustParse(t, `
static NSInteger kMaxWidgets = 10;
`)
	g := NewGraph()
	CollectFile(g, f, "widget.m")

	gv, ok := g.Get(KindGlobalVar, "kMaxWidgets")
	if !ok {
		t.Fatal("expected kMaxWidgets global var intention")
	}
	if gv.Access != AccessInternal {
		t.Fatalf("expected static global to be internal, got %v", gv.Access)
	}
	if gv.InitExpr == nil {
		t.Fatal("expected initializer expression to be captured")
	}
}
