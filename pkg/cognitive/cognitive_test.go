package cognitive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func complexityOf(t *testing.T, results []FunctionComplexity, name string) int {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r.Complexity
		}
	}
	t.Fatalf("no function named %q in results: %+v", name, results)
	return -1
}

func TestCIfElse(t *testing.T) {
	source := []byte(`int classify(int x) {
  if (x > 0) {
    return 1;
  } else {
    return 0;
  }
}`)
	calc := NewCCalculator()
	results, err := calc.Calculate(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// if (+1) + else (+1) = 2
	require.Equal(t, 2, complexityOf(t, results, "classify"))
}

func TestCNestedIfTimesThree(t *testing.T) {
	source := []byte(`int deep(int a, int b, int c) {
  if (a) {
    if (b) {
      if (c) {
        return 1;
      }
    }
  }
  return 0;
}`)
	calc := NewCCalculator()
	results, err := calc.Calculate(context.Background(), source)
	require.NoError(t, err)

	// if(+1+0) + if(+1+1) + if(+1+2) = 1+2+3 = 6
	require.Equal(t, 6, complexityOf(t, results, "deep"))
}

func TestJavaTryTwoCatch(t *testing.T) {
	source := []byte(`class Example {
  void run() {
    try {
      doWork();
    } catch (IOException e) {
      handle(e);
    } catch (RuntimeException e) {
      handle(e);
    }
  }
}`)
	calc := NewJavaCalculator()
	results, err := calc.Calculate(context.Background(), source)
	require.NoError(t, err)

	// catch_clause +1 each, no extra nesting added by try itself: 1+1 = 2
	require.Equal(t, 2, complexityOf(t, results, "run"))
}

func TestCGotoHasNoNestingBonus(t *testing.T) {
	source := []byte(`int f(int x) {
  if (x) {
    goto end;
  }
  end:
  return 0;
}`)
	calc := NewCCalculator()
	results, err := calc.Calculate(context.Background(), source)
	require.NoError(t, err)

	// if (+1) + goto (+1, no nesting bonus despite being nested one level deep) = 2
	require.Equal(t, 2, complexityOf(t, results, "f"))
}

func TestCLogicalOperatorsAddFlatOne(t *testing.T) {
	source := []byte(`int f(int a, int b) {
  if (a && b) {
    return 1;
  }
  return 0;
}`)
	calc := NewCCalculator()
	results, err := calc.Calculate(context.Background(), source)
	require.NoError(t, err)

	// if (+1) + && (+1) = 2
	require.Equal(t, 2, complexityOf(t, results, "f"))
}
