package seeder

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateBetweenBounds(t *testing.T) {
	g := NewDataGenerator()
	start := date(2021, 3, 1)
	end := date(2021, 3, 10)

	for i := 0; i < 500; i++ {
		d := g.DateBetween(start, end)
		assert.False(t, d.Before(start), "%s before %s", d, start)
		assert.False(t, d.After(end), "%s after %s", d, end)
		assert.Equal(t, d, day(d))
	}
}

func TestDateBetweenCollapsedWindow(t *testing.T) {
	g := NewDataGenerator()
	start := date(2021, 6, 1)

	assert.Equal(t, start, g.DateBetween(start, start))
	assert.Equal(t, start, g.DateBetween(start, date(2021, 5, 1)))
	assert.Equal(t, start, g.DateBetween(start.Add(7*time.Hour), start.Add(3*time.Hour)))
}

func TestChanceExtremes(t *testing.T) {
	g := NewDataGenerator()
	for i := 0; i < 100; i++ {
		assert.False(t, g.Chance(0))
		assert.True(t, g.Chance(100))
	}
}

func TestIntBetween(t *testing.T) {
	g := NewDataGenerator()
	for i := 0; i < 200; i++ {
		v := g.IntBetween(5, 9)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 9)
	}
	assert.Equal(t, 4, g.IntBetween(4, 4))
}

func TestGeneratedTextIsDelimiterFree(t *testing.T) {
	g := NewDataGenerator()
	for i := 0; i < 200; i++ {
		mobile := g.MobileNumber()
		assert.True(t, strings.HasPrefix(mobile, "08"), mobile)
		assert.Len(t, mobile, 12)

		for _, v := range []string{mobile, g.Phone(), g.Company(), g.FirstName(Female), g.LastName(Male)} {
			assert.NotEmpty(t, v)
			assert.NotContains(t, v, ",")
			assert.NotContains(t, v, `"`)
			assert.NotContains(t, v, `\`)
		}
	}
}

func TestNumerifyKeepsLeadingZero(t *testing.T) {
	g := NewDataGenerator()
	for i := 0; i < 200; i++ {
		mobile := g.MobileNumber()
		assert.True(t, strings.HasPrefix(mobile, "08"), mobile)
		assert.Regexp(t, `^08[125789][0-9]{9}$`, mobile)

		local := g.numerify("08##-####-####")
		assert.Regexp(t, `^08[0-9]{2}-[0-9]{4}-[0-9]{4}$`, local)
		assert.Regexp(t, `^\(021\) [0-9]{3} [0-9]{4}$`, g.numerify("(021) ### ####"))
	}
}

func TestNamesFollowSex(t *testing.T) {
	g := NewDataGenerator()
	for i := 0; i < 50; i++ {
		assert.Contains(t, femaleFirstNames, g.FirstName(Female))
		assert.Contains(t, maleFirstNames, g.FirstName(Male))
		assert.Contains(t, femaleLastNames, g.LastName(Female))
		assert.Contains(t, maleLastNames, g.LastName(Male))
	}
}
