package metabin

import "testing"

func Test_strategyFactories(t *testing.T) {
	type args struct {
		family string
		name   string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{"normal basis", args{"basis", "normal"}, false},
		{"hotgroup basis", args{"basis", "hotgroup"}, false},
		{"unknown basis", args{"basis", "hottestgroup"}, true},
		{"sum vector", args{"vector", "sum"}, false},
		{"signal alias", args{"vector", "signal"}, false},
		{"best vector", args{"vector", "best"}, false},
		{"unknown vector", args{"vector", "mean"}, true},
		{"dot compare", args{"compare", "dot"}, false},
		{"ranking compare", args{"compare", "ranking"}, false},
		{"unknown compare", args{"compare", "euclidean"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			switch tt.args.family {
			case "basis":
				_, err = NewBasisStrategy(tt.args.name, 4)
			case "vector":
				_, err = NewVectorStrategy(tt.args.name)
			case "compare":
				_, err = NewCompareStrategy(tt.args.name, 0)
			}

			if (err != nil) != tt.wantErr {
				t.Errorf("factory error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_NewBasisStrategy_topSize(t *testing.T) {
	if _, err := NewBasisStrategy("hotgroup", 0); err == nil {
		t.Error("hotgroup with a non-positive top size should error")
	}
}
