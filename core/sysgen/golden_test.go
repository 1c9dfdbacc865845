package sysgen

// Reference storage computed independently from the contract layouts.

var goldenValidator0 = map[string]string{
	"0x0000000000000000000000000000000000000000000000000000000000000001": "0x0000000000000000000000000000000000000000000000000000000000000002",
	"0x0000000000000000000000000000000000000000000000000000000000000007": "0x0000000000000000000000003100000000000000000000000000000000000000",
	"0x2acc3b2f9173e8286eccba1387837f4d4f4817ec10dd321ced45ad695233a8d9": "0x6130613061306130613061306130613061306130613061306130613061306130",
	"0x2acc3b2f9173e8286eccba1387837f4d4f4817ec10dd321ced45ad695233a8da": "0x6130613061306130613061306130613061306130613061306130613061306130",
	"0x2acc3b2f9173e8286eccba1387837f4d4f4817ec10dd321ced45ad695233a8db": "0x6130613061306130613061306130613061306130613061306130613061306130",
	"0x398ed0884818bfaaed46118e1002bfbdc927738ba9cbe775cedd681e378d8268": "0x3130303331313131313131313131313131313131313131313131313131313131",
	"0x398ed0884818bfaaed46118e1002bfbdc927738ba9cbe775cedd681e378d8269": "0x3131313131313131313131313131313131313131313131313131313131313131",
	"0x398ed0884818bfaaed46118e1002bfbdc927738ba9cbe775cedd681e378d826a": "0x3131313131313131313131313131313131313131313131313131313131313131",
	"0x398ed0884818bfaaed46118e1002bfbdc927738ba9cbe775cedd681e378d826b": "0x3131313131313131313131313131313131313131313131313131313131313131",
	"0x398ed0884818bfaaed46118e1002bfbdc927738ba9cbe775cedd681e378d826c": "0x3131313100000000000000000000000000000000000000000000000000000000",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf28": "0x646f6d61696e300000000000000000000000000000000000000000000000000e",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf29": "0x0000000000000000000000000000000000000000000000000000000000000109",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf2b": "0x00000000000000000000000000000000000000000000000000000000000000c1",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf2d": "0x7463703a2f2f3132372e302e302e313a3139303030000000000000000000002a",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf2e": "0x0000000000000000000000000000000000000000000000000000000000000001",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf2f": "0x2d9424c553c3ee79a68b1c53975d98e412e38c226d60f12e42236f34c696e1d5",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf30": "0x0000000000000000000000000000000000000000000000000de0b6b3a7640000",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf31": "0x0000000000000000000000002cc298bdee7cfeac9b49f9659e2f3d637e149696",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf32": "0x0000000000000000000000000000000000000000000000000de0b6b3a7640000",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf33": "0x0000000000000000000000000000000000000000000000000000000000000000",
	"0x510cb037080df5d70dbc6cf4fafee7b8c55e2b82ad7e9a1386eed1f94bb8cf34": "0x0000000000000000000000000000000000000000000000000000000000000000",
	"0xb10e2d527612073b26eecdfd717e6a320cf44b4afac2b0732d9fcbe2b7fa0cf6": "0x2d9424c553c3ee79a68b1c53975d98e412e38c226d60f12e42236f34c696e1d5",
}

var goldenValidator1 = map[string]string{
	"0x0000000000000000000000000000000000000000000000000000000000000001": "0x0000000000000000000000000000000000000000000000000000000000000002",
	"0x0000000000000000000000000000000000000000000000000000000000000007": "0x0000000000000000000000003100000000000000000000000000000000000000",
	"0x0215c91bbc3027d751048c558c571c2b97b89661a44066379ca2852e535e62b9": "0x3130303332323232323232323232323232323232323232323232323232323232",
	"0x0215c91bbc3027d751048c558c571c2b97b89661a44066379ca2852e535e62ba": "0x3232323232323232323232323232323232323232323232323232323232323232",
	"0x0215c91bbc3027d751048c558c571c2b97b89661a44066379ca2852e535e62bb": "0x3232323232323232323232323232323232323232323232323232323232323232",
	"0x0215c91bbc3027d751048c558c571c2b97b89661a44066379ca2852e535e62bc": "0x3232323232323232323232323232323232323232323232323232323232323232",
	"0x0215c91bbc3027d751048c558c571c2b97b89661a44066379ca2852e535e62bd": "0x3232323200000000000000000000000000000000000000000000000000000000",
	"0x133126ed9a1df533363b1f21c19581e54243c9559c1a85b8a6f51bf545b01a01": "0x6130613061306130613061306130613061306130613061306130613061306130",
	"0x133126ed9a1df533363b1f21c19581e54243c9559c1a85b8a6f51bf545b01a02": "0x6130613061306130613061306130613061306130613061306130613061306130",
	"0x133126ed9a1df533363b1f21c19581e54243c9559c1a85b8a6f51bf545b01a03": "0x6130613061306130613061306130613061306130613061306130613061306130",
	"0x668db4cace43fc91ceda7e2d27cffc39f74477e99cc21fc6b1a056d980453037": "0x7463703a2f2f76616c696461746f722d312e6465766e65742e6578616d706c65",
	"0x668db4cace43fc91ceda7e2d27cffc39f74477e99cc21fc6b1a056d980453038": "0x2e6f72673a313930303000000000000000000000000000000000000000000000",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7a5": "0x646f6d61696e310000000000000000000000000000000000000000000000000e",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7a6": "0x0000000000000000000000000000000000000000000000000000000000000109",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7a8": "0x00000000000000000000000000000000000000000000000000000000000000c1",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7aa": "0x0000000000000000000000000000000000000000000000000000000000000055",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7ab": "0x0000000000000000000000000000000000000000000000000000000000000001",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7ac": "0x330f2a3f1170a33e24ecd575e0e1211bcb4cad580d93714a6780b65853a6d782",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7ad": "0x0000000000000000000000000000000000000000000000001bc16d674ec80000",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7ae": "0x0000000000000000000000002cc298bdee7cfeac9b49f9659e2f3d637e149696",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7af": "0x0000000000000000000000000000000000000000000000001bc16d674ec80000",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7b0": "0x0000000000000000000000000000000000000000000000000000000000000000",
	"0x85c6213dd3f4ab70b4fa6a220115dafa37e2d453a346764a46c232b0d5c7f7b1": "0x0000000000000000000000000000000000000000000000000000000000000000",
	"0xb10e2d527612073b26eecdfd717e6a320cf44b4afac2b0732d9fcbe2b7fa0cf7": "0x330f2a3f1170a33e24ecd575e0e1211bcb4cad580d93714a6780b65853a6d782",
}

var goldenChainConfig = map[string]string{
	"0x0000000000000000000000000000000000000000000000000000000000000000": "0x0000000000000000000000004100000000000000000000000000000000000000",
	"0x0000000000000000000000000000000000000000000000000000000000000001": "0x0000000000000000000000000000000000000000000000000000000000000001",
	"0xb10e2d527612073b26eecdfd717e6a320cf44b4afac2b0732d9fcbe2b7fa0cf6": "0x0000000000000000000000000000000000000000000000000000000000000000",
	"0xb10e2d527612073b26eecdfd717e6a320cf44b4afac2b0732d9fcbe2b7fa0cf7": "0x0000000000000000000000000000000000000000000000000000000000000002",
	"0xea7809e925a8989e20c901c4c1da82f0ba29b26797760d445a0ce4cf3c6fbd31": "0x636861696e2e6964000000000000000000000000000000000000000000000010",
	"0xea7809e925a8989e20c901c4c1da82f0ba29b26797760d445a0ce4cf3c6fbd32": "0x363838363838000000000000000000000000000000000000000000000000000c",
	"0xea7809e925a8989e20c901c4c1da82f0ba29b26797760d445a0ce4cf3c6fbd33": "0x0000000000000000000000000000000000000000000000000000000000000055",
	"0xea7809e925a8989e20c901c4c1da82f0ba29b26797760d445a0ce4cf3c6fbd34": "0x726f756e645f726f62696e5f776974685f7374616b655f77656967687400003a",
	"0xfaa64fd37a9bda9e4d595d3432410e895446aaeb4403e118a872dccff2a5f331": "0x636f6e73656e7375732e70726f706f7365725f73656c656374696f6e5f737472",
	"0xfaa64fd37a9bda9e4d595d3432410e895446aaeb4403e118a872dccff2a5f332": "0x61746567795f6e616d6500000000000000000000000000000000000000000000",
}

var goldenBootstrap = map[string]string{
	"0x698c853323b188536fe5cc2d5388fec9864d9bd9adce39891e36656b6fc9282f": "0x0000000000000000000000000000000000000000000000000000000000000001",
	"0xb7db2dd08fcb62d0c9e08c51941cae53c267786a0b75803fb7960902fc8ef97e": "0x0000000000000000000000000000000000000000000000000000000000000000",
	"0xe9c3e6c8a656d2030131a0b44acfd11dae3d0652abd030eb0bbf12881371f8a0": "0x0000000000000000000000000000000000000000000000000000000000000001",
	"0xf0c57e16840df040f15088dc2f81fe391c3923bec73e23a9662efc9c229c6a00": "0x000000000000000000000000000000000000000000000000ffffffffffffffff",
}
