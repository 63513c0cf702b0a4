package objcparse

import (
	"testing"

	"github.com/occ2swift/occ/internal/token"
)

func TestParseSimpleInterface(t *testing.T) {
	src := `
@interface Widget : NSObject <NSCopying>
@property (nonatomic, strong) NSString *name;
- (void)setName:(NSString *)name;
+ (instancetype)widgetWithName:(NSString *)name;
@end
`
	f, errs := ParseFile(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(f.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(f.Decls))
	}
	d := f.Decls[0]
	if d.Kind != DeclInterface || d.Name != "Widget" || d.Superclass != "NSObject" {
		t.Fatalf("unexpected decl: %+v", d)
	}
	if len(d.Protocols) != 1 || d.Protocols[0] != "NSCopying" {
		t.Fatalf("expected NSCopying protocol, got %v", d.Protocols)
	}
	var sawProperty, sawSetter, sawClassMethod bool
	for _, m := range d.Members {
		switch m.Kind {
		case MemberProperty:
			sawProperty = true
			if m.Name != "name" || m.TypeName != "NSString *" {
				t.Fatalf("unexpected property: %+v", m)
			}
		case MemberMethod:
			if m.IsClassMethod {
				sawClassMethod = true
			} else if len(m.Selector) == 1 && m.Selector[0].Label == "setName" {
				sawSetter = true
			}
		}
	}
	if !sawProperty || !sawSetter || !sawClassMethod {
		t.Fatalf("missing expected members: %+v", d.Members)
	}
}

func TestParseImplementationWithIvarsAndBody(t *testing.T) {
	src := `
@implementation Widget {
  @private
  NSInteger _count;
}
- (void)increment {
  _count = _count + 1;
  if (_count > 10) {
    _count = 0;
  }
}
@end
`
	f, errs := ParseFile(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	d := f.Decls[0]
	if d.Kind != DeclImplementation {
		t.Fatalf("expected implementation, got %v", d.Kind)
	}
	var ivar *Member
	var method *Member
	for i := range d.Members {
		switch d.Members[i].Kind {
		case MemberIVar:
			ivar = &d.Members[i]
		case MemberMethod:
			method = &d.Members[i]
		}
	}
	if ivar == nil || ivar.Name != "_count" || ivar.Visibility != "private" {
		t.Fatalf("unexpected ivar: %+v", ivar)
	}
	if method == nil || len(method.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %+v", method)
	}
}

func TestParseMessageSendSelector(t *testing.T) {
	src := `
@implementation Widget
- (void)configure {
  [self setName:@"hi" andCount:3];
}
@end
`
	f, errs := ParseFile(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	method := d0Method(t, f)
	if len(method.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(method.Body))
	}
	expr := method.Body[0].Expr
	if expr == nil || len(expr.PostfixChain) != 2 {
		t.Fatalf("expected postfix chain of member+call, got %+v", expr)
	}
	if expr.PostfixChain[0].Name != "setName:andCount:" {
		t.Fatalf("unexpected selector: %q", expr.PostfixChain[0].Name)
	}
	if len(expr.PostfixChain[1].Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(expr.PostfixChain[1].Arguments))
	}
}

func d0Method(t *testing.T, f *File) *Member {
	for _, m := range f.Decls[0].Members {
		if m.Kind == MemberMethod {
			return &m
		}
	}
	t.Fatal("no method found")
	return nil
}

func TestParseNSEnum(t *testing.T) {
	src := `
typedef NS_ENUM(NSInteger, WidgetState) {
  WidgetStateIdle = 0,
  WidgetStateRunning,
  WidgetStateDone = 2,
};
`
	f, errs := ParseFile(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	d := f.Decls[0]
	if d.Kind != DeclEnum || d.Name != "WidgetState" || d.UnderlyingType != "NSInteger" {
		t.Fatalf("unexpected decl: %+v", d)
	}
	if len(d.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(d.Cases))
	}
	if !d.Cases[0].HasRawValue || d.Cases[0].RawValue != 0 {
		t.Fatalf("expected explicit raw value 0 for first case, got %+v", d.Cases[0])
	}
	if d.Cases[1].HasRawValue {
		t.Fatalf("expected no raw value for second case, got %+v", d.Cases[1])
	}
}

func TestAssumeNonnullRegionTracked(t *testing.T) {
	src := `
NS_ASSUME_NONNULL_BEGIN
@interface Widget : NSObject
- (NSString *)name;
@end
NS_ASSUME_NONNULL_END
@interface Other : NSObject
- (NSString *)label;
@end
`
	f, errs := ParseFile(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if !f.Decls[0].AssumeNonnull {
		t.Fatalf("expected Widget to be inside the nonnull region")
	}
	if f.Decls[1].AssumeNonnull {
		t.Fatalf("expected Other to be outside the nonnull region")
	}
}

func TestParseFastEnumeration(t *testing.T) {
	src := `
@implementation Widget
- (void)logAll:(NSArray *)items {
  for (NSString *item in items) {
    NSLog(item);
  }
}
@end
`
	f, errs := ParseFile(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	method := d0Method(t, f)
	if len(method.Body) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(method.Body))
	}
}

func TestScannerPreprocessorLineCollectedVerbatim(t *testing.T) {
	sc := newScanner("#import <Foundation/Foundation.h>\n@interface Foo\n@end")
	tok := sc.next()
	if tok.Type != token.PREPROCESSOR {
		t.Fatalf("expected PREPROCESSOR, got %v", tok.Type)
	}
	if tok.Lexeme != "#import <Foundation/Foundation.h>" {
		t.Fatalf("unexpected preprocessor lexeme: %q", tok.Lexeme)
	}
}
