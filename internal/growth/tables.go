package growth

// WHO Child Growth Standards LMS parameters, 0 to 24 months.
// https://www.who.int/tools/child-growth-standards/standards

// Weight-for-age (kg), boys.
var weightBoys = []lms{
	{0, 0.3487, 3.3464, 0.14602},
	{1, 0.2297, 4.4709, 0.13395},
	{2, 0.1970, 5.5675, 0.12385},
	{3, 0.1738, 6.3762, 0.11727},
	{4, 0.1553, 7.0023, 0.11316},
	{5, 0.1395, 7.5105, 0.10980},
	{6, 0.1257, 7.9340, 0.10693},
	{7, 0.1134, 8.2970, 0.10441},
	{8, 0.1021, 8.6151, 0.10218},
	{9, 0.0917, 8.9014, 0.10020},
	{10, 0.0820, 9.1649, 0.09844},
	{11, 0.0730, 9.4122, 0.09688},
	{12, 0.0644, 9.6479, 0.09549},
	{13, 0.0563, 9.8749, 0.09425},
	{14, 0.0487, 10.0953, 0.09314},
	{15, 0.0413, 10.3108, 0.09214},
	{16, 0.0343, 10.5228, 0.09123},
	{17, 0.0275, 10.7319, 0.09040},
	{18, 0.0211, 10.9385, 0.08964},
	{19, 0.0148, 11.1430, 0.08894},
	{20, 0.0087, 11.3462, 0.08829},
	{21, 0.0029, 11.5486, 0.08769},
	{22, -0.0028, 11.7504, 0.08713},
	{23, -0.0083, 11.9514, 0.08661},
	{24, -0.0137, 12.1515, 0.08612},
}

// Weight-for-age (kg), girls.
var weightGirls = []lms{
	{0, 0.3809, 3.2322, 0.14171},
	{1, 0.1714, 4.1873, 0.13724},
	{2, 0.0962, 5.1282, 0.12635},
	{3, 0.0402, 5.8458, 0.11860},
	{4, -0.0050, 6.4237, 0.11345},
	{5, -0.0430, 6.8985, 0.10938},
	{6, -0.0756, 7.2970, 0.10604},
	{7, -0.1039, 7.6422, 0.10325},
	{8, -0.1288, 7.9487, 0.10090},
	{9, -0.1507, 8.2254, 0.09891},
	{10, -0.1700, 8.4800, 0.09722},
	{11, -0.1872, 8.7192, 0.09577},
	{12, -0.2024, 8.9481, 0.09453},
	{13, -0.2158, 9.1699, 0.09346},
	{14, -0.2278, 9.3870, 0.09252},
	{15, -0.2384, 9.6008, 0.09171},
	{16, -0.2478, 9.8124, 0.09099},
	{17, -0.2562, 10.0226, 0.09035},
	{18, -0.2637, 10.2315, 0.08978},
	{19, -0.2703, 10.4393, 0.08927},
	{20, -0.2762, 10.6464, 0.08882},
	{21, -0.2815, 10.8534, 0.08841},
	{22, -0.2862, 11.0608, 0.08805},
	{23, -0.2903, 11.2688, 0.08772},
	{24, -0.2941, 11.4775, 0.08743},
}

// Length-for-age (cm), boys.
var heightBoys = []lms{
	{0, 1, 49.8842, 0.03795},
	{1, 1, 54.7244, 0.03557},
	{2, 1, 58.4249, 0.03424},
	{3, 1, 61.4292, 0.03328},
	{4, 1, 63.8860, 0.03257},
	{5, 1, 65.9026, 0.03204},
	{6, 1, 67.6236, 0.03165},
	{7, 1, 69.1645, 0.03139},
	{8, 1, 70.5994, 0.03124},
	{9, 1, 71.9687, 0.03117},
	{10, 1, 73.2812, 0.03118},
	{11, 1, 74.5388, 0.03126},
	{12, 1, 75.7488, 0.03138},
	{13, 1, 76.9186, 0.03154},
	{14, 1, 78.0497, 0.03174},
	{15, 1, 79.1458, 0.03197},
	{16, 1, 80.2113, 0.03222},
	{17, 1, 81.2487, 0.03248},
	{18, 1, 82.2587, 0.03277},
	{19, 1, 83.2418, 0.03307},
	{20, 1, 84.1996, 0.03337},
	{21, 1, 85.1348, 0.03369},
	{22, 1, 86.0477, 0.03401},
	{23, 1, 86.9410, 0.03434},
	{24, 1, 87.8161, 0.03467},
}

// Length-for-age (cm), girls.
var heightGirls = []lms{
	{0, 1, 49.1477, 0.03790},
	{1, 1, 53.6872, 0.03614},
	{2, 1, 57.0673, 0.03568},
	{3, 1, 59.8029, 0.03520},
	{4, 1, 62.0899, 0.03486},
	{5, 1, 64.0301, 0.03463},
	{6, 1, 65.7311, 0.03448},
	{7, 1, 67.2873, 0.03441},
	{8, 1, 68.7498, 0.03440},
	{9, 1, 70.1435, 0.03444},
	{10, 1, 71.4818, 0.03452},
	{11, 1, 72.7710, 0.03464},
	{12, 1, 74.0153, 0.03479},
	{13, 1, 75.2154, 0.03496},
	{14, 1, 76.3723, 0.03514},
	{15, 1, 77.4880, 0.03534},
	{16, 1, 78.5642, 0.03555},
	{17, 1, 79.6028, 0.03576},
	{18, 1, 80.6051, 0.03598},
	{19, 1, 81.5722, 0.03621},
	{20, 1, 82.5056, 0.03644},
	{21, 1, 83.4065, 0.03668},
	{22, 1, 84.2753, 0.03693},
	{23, 1, 85.1136, 0.03717},
	{24, 1, 85.9235, 0.03741},
}

// Head circumference-for-age (cm), boys.
var headBoys = []lms{
	{0, 1, 34.4618, 0.03686},
	{1, 1, 37.2759, 0.03133},
	{2, 1, 39.1285, 0.02997},
	{3, 1, 40.5135, 0.02918},
	{4, 1, 41.6317, 0.02868},
	{5, 1, 42.5576, 0.02837},
	{6, 1, 43.3306, 0.02817},
	{7, 1, 43.9803, 0.02804},
	{8, 1, 44.5300, 0.02796},
	{9, 1, 44.9998, 0.02792},
	{10, 1, 45.4051, 0.02790},
	{11, 1, 45.7573, 0.02789},
	{12, 1, 46.0661, 0.02789},
	{13, 1, 46.3395, 0.02789},
	{14, 1, 46.5844, 0.02791},
	{15, 1, 46.8060, 0.02792},
	{16, 1, 47.0088, 0.02795},
	{17, 1, 47.1962, 0.02797},
	{18, 1, 47.3711, 0.02800},
	{19, 1, 47.5357, 0.02803},
	{20, 1, 47.6919, 0.02806},
	{21, 1, 47.8408, 0.02809},
	{22, 1, 47.9833, 0.02813},
	{23, 1, 48.1201, 0.02816},
	{24, 1, 48.2515, 0.02819},
}

// Head circumference-for-age (cm), girls.
var headGirls = []lms{
	{0, 1, 33.8787, 0.03496},
	{1, 1, 36.5463, 0.03079},
	{2, 1, 38.2521, 0.02963},
	{3, 1, 39.5328, 0.02893},
	{4, 1, 40.5817, 0.02848},
	{5, 1, 41.4590, 0.02817},
	{6, 1, 42.1995, 0.02796},
	{7, 1, 42.8290, 0.02782},
	{8, 1, 43.3671, 0.02773},
	{9, 1, 43.8300, 0.02768},
	{10, 1, 44.2319, 0.02766},
	{11, 1, 44.5844, 0.02765},
	{12, 1, 44.8965, 0.02766},
	{13, 1, 45.1752, 0.02768},
	{14, 1, 45.4265, 0.02770},
	{15, 1, 45.6551, 0.02773},
	{16, 1, 45.8650, 0.02776},
	{17, 1, 46.0598, 0.02780},
	{18, 1, 46.2424, 0.02784},
	{19, 1, 46.4152, 0.02788},
	{20, 1, 46.5801, 0.02793},
	{21, 1, 46.7384, 0.02797},
	{22, 1, 46.8913, 0.02802},
	{23, 1, 47.0391, 0.02806},
	{24, 1, 47.1822, 0.02811},
}
