package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPythonSingleIf(t *testing.T) {
	code := "def foo():\n    if True:\n        return 1\n"
	p := newPython()

	assert.Equal(t, 3, p.ComputeComplexity(code))
	assert.Equal(t, 1, p.CountFunctions(code))
}

func TestJavaScriptElseIfAndLogicalOperators(t *testing.T) {
	code := `function classify(x) {
  if (x > 0 && x < 10) {
    return "small";
  } else if (x >= 10 || x < 0) {
    return "other";
  }
  return "zero";
}`
	p := newJavaScriptLike("JavaScript")

	// base 1 + if*2 (the `if` pattern also matches inside `else if`) +
	// else if + && + || + return*3 = 1+2+1+1+1+3 = 9
	assert.Equal(t, 9, p.ComputeComplexity(code))
	assert.Equal(t, 1, p.CountFunctions(code))
}

func TestCSwitchCase(t *testing.T) {
	code := `int classify(int x) {
  switch (x) {
    case 1:
      return 1;
    case 2:
      return 2;
    default:
      return 0;
  }
}`
	p := newC()
	assert.True(t, p.ComputeComplexity(code) > 1)
	assert.Equal(t, 1, p.CountFunctions(code))
}

func TestCppHasNoFunctionPattern(t *testing.T) {
	p := newCpp()
	assert.Equal(t, 0, p.CountFunctions("int main() { if (true) return 0; }"))
}

func TestGoFunctionAndControlKeywords(t *testing.T) {
	code := `func run(items []int) int {
  total := 0
  for _, v := range items {
    if v > 0 {
      total += v
    }
  }
  return total
}`
	p := newGo()
	assert.Equal(t, 1, p.CountFunctions(code))
	assert.True(t, p.ComputeComplexity(code) > 1)
}

func TestAdaStripsEndIfBeforeMatching(t *testing.T) {
	code := `if X then
  Put_Line ("yes");
end if;`
	p := newAda()
	// Only the opening "if" counts; "end if;" is stripped before matching.
	assert.Equal(t, 2, p.ComputeComplexity(code))
	assert.Equal(t, 0, p.CountFunctions(code))
}

func TestRegistryLooksUpByExtension(t *testing.T) {
	r := NewRegistry()

	cases := map[string]string{
		".py":  "Python",
		".js":  "JavaScript",
		".ts":  "TypeScript",
		".java": "Java",
		".cs":  "C#",
		".c":   "C",
		".cpp": "C++",
		".go":  "Go",
		".adb": "Ada",
	}
	for ext, name := range cases {
		p, ok := r.Lookup(ext)
		require.True(t, ok, "extension %q should be registered", ext)
		assert.Equal(t, name, p.Name)
	}

	_, ok := r.Lookup(".rb")
	assert.False(t, ok)
}

func TestJavaReusesJavaScriptControlKeywords(t *testing.T) {
	code := `public int classify(int x) {
  if (x > 0 && x < 10) {
    return 1;
  }
  return 0;
}`
	p := newJava()
	assert.Equal(t, "Java", p.Name)
	assert.True(t, p.ComputeComplexity(code) > 1)
}
